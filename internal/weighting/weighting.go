// Package weighting derives per-criterion weight profiles from a
// candidate's stated priorities. Every scoring strategy consumes the same
// profile, so the criterion names live here.
package weighting

import "github.com/Bapt252/Commitment--sub002/internal/types"

// Criterion names shared by every scoring strategy.
const (
	Skills      = "skills"
	Experience  = "experience"
	Location    = "location"
	Salary      = "salary"
	Flexibility = "flexibility"
)

// Criteria lists every criterion in presentation order.
var Criteria = []string{Skills, Experience, Location, Salary, Flexibility}

// Default weights applied when the candidate expresses no priorities.
var base = map[string]float64{
	Skills:      0.30,
	Experience:  0.25,
	Location:    0.20,
	Salary:      0.15,
	Flexibility: 0.10,
}

// Profile maps criterion name to weight. A profile returned by Build
// always sums to 1.
type Profile map[string]float64

// Sum returns the total weight in the profile. Summation runs in the
// fixed Criteria order so repeated builds stay bit-for-bit identical.
func (p Profile) Sum() float64 {
	var s float64
	for _, name := range Criteria {
		s += p[name]
	}
	return s
}

// Get returns the weight for a criterion, zero when absent.
func (p Profile) Get(name string) float64 { return p[name] }

// multiplier converts a 1-10 slider into a weight multiplier. A neutral 5
// yields 1.0, the extremes yield 0.6 and 1.5.
func multiplier(slider int) float64 {
	return 0.5 + float64(slider)/10
}

// Build derives a weight profile from the candidate's priority sliders.
// The evolution slider drives skills and experience, remuneration drives
// salary, proximity drives location and flexibility drives flexibility.
// A zero vector is treated as all-neutral. The result always sums to 1
// with every weight positive, so Build never fails.
func Build(p types.PriorityVector) Profile {
	p = p.Normalized()

	out := Profile{
		Skills:      base[Skills] * multiplier(p.Evolution),
		Experience:  base[Experience] * multiplier(p.Evolution),
		Location:    base[Location] * multiplier(p.Proximity),
		Salary:      base[Salary] * multiplier(p.Remuneration),
		Flexibility: base[Flexibility] * multiplier(p.Flexibility),
	}

	sum := out.Sum()
	for name, w := range out {
		out[name] = w / sum
	}
	return out
}

// Base returns a copy of the default profile. It equals Build of a zero
// vector.
func Base() Profile {
	out := make(Profile, len(base))
	for name, w := range base {
		out[name] = w
	}
	return out
}
