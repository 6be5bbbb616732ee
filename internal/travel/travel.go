// Package travel estimates commute durations between a candidate's home
// and a job's location, caching results with a TTL and degrading to a
// straight-line estimate when the upstream geo collaborator is unavailable.
package travel

import (
	"context"
	"math"
	"time"

	"github.com/Bapt252/Commitment--sub002/internal/types"
)

// Mode is a commute mode understood by the geo collaborator.
type Mode string

// Supported commute modes.
const (
	ModeDriving   Mode = "driving"
	ModeTransit   Mode = "transit"
	ModeBicycling Mode = "bicycling"
	ModeWalking   Mode = "walking"
)

// ParseMode normalizes a candidate-supplied mode string. Unknown or empty
// input falls back to driving.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeTransit, ModeBicycling, ModeWalking, ModeDriving:
		return Mode(s)
	default:
		return ModeDriving
	}
}

// Estimate is the upstream geo collaborator's answer for one
// (origin, destination, mode) triple.
type Estimate struct {
	DurationSeconds int      `json:"duration_seconds"`
	DistanceMeters  float64  `json:"distance_meters"`
	TransitDetails  []string `json:"transit_details,omitempty"`
}

// Duration returns the estimate as a time.Duration.
func (e Estimate) Duration() time.Duration {
	return time.Duration(e.DurationSeconds) * time.Second
}

// Estimator is the upstream geo collaborator. A zero departure time means
// "now" and lets the collaborator pick.
type Estimator interface {
	EstimateTravel(ctx context.Context, origin, destination types.Location, mode Mode, departure time.Time) (Estimate, error)
}

// Average speeds in km/h used to convert a straight-line distance into a
// degraded duration estimate.
var speedKmh = map[Mode]float64{
	ModeDriving:   40,
	ModeTransit:   25,
	ModeBicycling: 14,
	ModeWalking:   4.5,
}

// Straight-line distances understate real routes; scale them up before
// dividing by the mode speed.
const routeFactor = 1.3

// Without coordinates no distance can be computed at all; assume a long
// commute rather than a flattering one.
const noCoordinatesEstimate = 40 * time.Minute

const earthRadiusMeters = 6371000.0

// haversineMeters returns the great-circle distance between two points.
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// fallbackEstimate builds the degraded estimate used when the upstream
// collaborator cannot answer.
func fallbackEstimate(origin, destination types.Location, mode Mode) Estimate {
	if !origin.HasCoordinates() || !destination.HasCoordinates() {
		return Estimate{
			DurationSeconds: int(noCoordinatesEstimate.Seconds()),
			TransitDetails:  []string{"no coordinates available, pessimistic default"},
		}
	}

	straight := haversineMeters(*origin.Lat, *origin.Lng, *destination.Lat, *destination.Lng)
	routed := straight * routeFactor
	speed := speedKmh[mode]
	if speed == 0 {
		speed = speedKmh[ModeDriving]
	}
	hours := (routed / 1000) / speed

	return Estimate{
		DurationSeconds: int(hours * 3600),
		DistanceMeters:  routed,
		TransitDetails:  []string{"straight-line estimate"},
	}
}
