// Package engine implements the match orchestrator: it validates incoming
// requests, picks scoring strategies per pair, fans them out concurrently,
// recovers from partial strategy failure, blends consensus scores, and
// returns a deterministic ranked list. The circuit breaker toward the
// remote scoring collaborator lives here because its state drives the
// selection policy.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Bapt252/Commitment--sub002/internal/store"
	"github.com/Bapt252/Commitment--sub002/internal/strategy"
	"github.com/Bapt252/Commitment--sub002/internal/travel"
	"github.com/Bapt252/Commitment--sub002/internal/types"
	"github.com/Bapt252/Commitment--sub002/internal/weighting"
)

// Direction selects which side of the match is held fixed.
type Direction string

const (
	// CandidateToJobs holds one candidate fixed and ranks job offers.
	CandidateToJobs Direction = "candidate_to_jobs"
	// JobToCandidates holds one job offer fixed and ranks candidates.
	JobToCandidates Direction = "job_to_candidates"
)

// AutoStrategy lets the selection policy pick strategies per pair. It is
// the default when no strategy is named.
const AutoStrategy = "auto"

// Engine tuning. The zero value of any field selects its default.
const (
	defaultMaxConcurrency  = 8
	defaultStrategyTimeout = 10 * time.Second
	defaultRemoteTimeout   = 5 * time.Second
)

// Options tune one match request.
type Options struct {
	// Strategy names a registered strategy, or AutoStrategy.
	Strategy string `json:"strategy,omitempty"`
	// Limit truncates the ranked list when positive.
	Limit int `json:"limit,omitempty"`
	// Direction defaults to CandidateToJobs.
	Direction Direction `json:"direction,omitempty"`
}

// Request carries the records to match. CandidateToJobs reads Candidate
// and Jobs; JobToCandidates reads Job and Candidates.
type Request struct {
	Candidate  *types.Candidate  `json:"candidate,omitempty"`
	Jobs       []types.JobOffer  `json:"jobs,omitempty"`
	Job        *types.JobOffer   `json:"job,omitempty"`
	Candidates []types.Candidate `json:"candidates,omitempty"`
	Options    Options           `json:"options"`
}

// Result is one scored (candidate, job) pair. Consensus is set only when
// several strategies were blended.
type Result struct {
	CandidateID string                 `json:"candidate_id"`
	JobID       string                 `json:"job_id"`
	Score       types.MatchScore       `json:"score"`
	Consensus   *types.ConsensusResult `json:"consensus,omitempty"`
}

// Config tunes the engine. Zero-valued fields fall back to defaults.
type Config struct {
	// MaxConcurrency bounds parallel pair evaluations per request.
	MaxConcurrency int
	// StrategyTimeout bounds one strategy execution.
	StrategyTimeout time.Duration
	// RemoteTimeout bounds the remote scoring network call.
	RemoteTimeout time.Duration
	// BreakerThreshold and BreakerWindow tune the remote circuit breaker.
	BreakerThreshold int
	BreakerWindow    time.Duration
	// Travel tunes the travel time cache.
	Travel travel.CacheConfig
}

// DefaultConfig returns the stock engine tuning.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency:   defaultMaxConcurrency,
		StrategyTimeout:  defaultStrategyTimeout,
		RemoteTimeout:    defaultRemoteTimeout,
		BreakerThreshold: defaultBreakerThreshold,
		BreakerWindow:    defaultBreakerWindow,
		Travel:           travel.DefaultCacheConfig(),
	}
}

// Deps are the engine's collaborators. Store and Logger default when nil.
// A nil Estimator sends every travel lookup down the degraded path, and a
// nil Scorer leaves the remote strategy unregistered so auto selection
// never picks it.
type Deps struct {
	Store     store.Store
	Estimator travel.Estimator
	Scorer    strategy.ScoreClient
	Logger    *zap.Logger
}

// Engine is the match orchestrator. It is safe for concurrent use.
type Engine struct {
	config   Config
	logger   *zap.Logger
	registry *strategy.Registry
	breaker  *Breaker
	validate *validator.Validate
}

// New builds an engine with the built-in strategies registered.
func New(config Config, deps Deps) (*Engine, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	st := deps.Store
	if st == nil {
		st = store.NewMemoryStore(0)
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = defaultMaxConcurrency
	}
	if config.StrategyTimeout <= 0 {
		config.StrategyTimeout = defaultStrategyTimeout
	}
	if config.RemoteTimeout <= 0 {
		config.RemoteTimeout = defaultRemoteTimeout
	}

	cache := travel.NewCache(st, deps.Estimator, logger, config.Travel)

	registry := strategy.NewRegistry()
	strategies := []strategy.Strategy{
		strategy.NewSkills(),
		strategy.NewGeography(cache, nil),
		strategy.NewSemantic(),
		strategy.NewComprehensive(cache, nil),
	}
	if deps.Scorer != nil {
		strategies = append(strategies, strategy.NewRemote(deps.Scorer, config.RemoteTimeout))
	}
	for _, s := range strategies {
		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}

	return &Engine{
		config:   config,
		logger:   logger,
		registry: registry,
		breaker:  NewBreaker(st, logger, config.BreakerThreshold, config.BreakerWindow),
		validate: validator.New(),
	}, nil
}

// Strategies returns the registered strategy names.
func (e *Engine) Strategies() []string {
	return e.registry.Names()
}

// Match scores every pair the request implies and returns the ranked
// list. The list is complete or the request fails; a single failed pair
// is never silently dropped.
func (e *Engine) Match(ctx context.Context, req Request) ([]Result, error) {
	dir, err := resolveDirection(req.Options.Direction)
	if err != nil {
		return nil, err
	}
	if err := e.validateRequest(req, dir); err != nil {
		return nil, err
	}

	requested := req.Options.Strategy
	if requested == "" {
		requested = AutoStrategy
	}

	pairs := buildPairs(req, dir)
	results := make([]Result, len(pairs))
	if len(pairs) == 0 {
		return results, nil
	}

	logger := e.logger.With(zap.String("request_id", uuid.New().String()))
	logger.Info("match request accepted",
		zap.String("direction", string(dir)),
		zap.String("strategy", requested),
		zap.Int("pairs", len(pairs)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.MaxConcurrency)
	for i := range pairs {
		i := i
		g.Go(func() error {
			res, err := e.evaluatePair(gctx, logger, pairs[i], req.Options.Strategy)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortResults(results, dir)
	if req.Options.Limit > 0 && req.Options.Limit < len(results) {
		results = results[:req.Options.Limit]
	}

	logger.Info("match request complete", zap.Int("results", len(results)))
	return results, nil
}

// pair is one (candidate, job) evaluation unit.
type pair struct {
	candidate types.Candidate
	job       types.JobOffer
}

func buildPairs(req Request, dir Direction) []pair {
	if dir == JobToCandidates {
		pairs := make([]pair, 0, len(req.Candidates))
		for _, c := range req.Candidates {
			pairs = append(pairs, pair{candidate: c, job: *req.Job})
		}
		return pairs
	}
	pairs := make([]pair, 0, len(req.Jobs))
	for _, j := range req.Jobs {
		pairs = append(pairs, pair{candidate: *req.Candidate, job: j})
	}
	return pairs
}

// evaluatePair drives one pair through the orchestration state machine:
// selecting, executing, degraded recovery when a strategy fails, then
// aggregation.
func (e *Engine) evaluatePair(ctx context.Context, logger *zap.Logger, p pair, explicit string) (Result, error) {
	logger = logger.With(
		zap.String("candidate_id", p.candidate.ID),
		zap.String("job_id", p.job.ID))

	run := newPairRun()
	advance := func(to Phase) error {
		if err := run.transition(to); err != nil {
			return err
		}
		logger.Debug("phase transition", zap.Stringer("phase", to))
		return nil
	}

	sel := e.selectStrategies(ctx, p.candidate, explicit)
	logger.Debug("strategies selected",
		zap.Strings("strategies", sel.Strategies),
		zap.Bool("consensus", sel.Consensus),
		zap.String("reason", sel.Reason))

	if err := advance(PhaseExecuting); err != nil {
		return Result{}, err
	}
	weights := weighting.Build(p.candidate.Priorities)
	scores, failures := e.execute(ctx, sel, p, weights)

	if len(failures) > 0 {
		if err := advance(PhaseDegraded); err != nil {
			return Result{}, err
		}
		e.recoverPair(ctx, logger, sel, p, weights, scores, failures)
		if len(scores) == 0 {
			return Result{}, &AllStrategiesFailedError{
				CandidateID: p.candidate.ID,
				JobID:       p.job.ID,
				Failures:    failures,
			}
		}
	}

	if err := advance(PhaseAggregating); err != nil {
		return Result{}, err
	}
	res := Result{CandidateID: p.candidate.ID, JobID: p.job.ID}
	if sel.Consensus {
		score, consensus := aggregate(scores, failures, sel.Weights)
		res.Score = score
		res.Consensus = &consensus
	} else {
		// A single-strategy run, or its fallback, leaves exactly one score.
		for _, score := range scores {
			res.Score = score
		}
	}

	if err := advance(PhaseDone); err != nil {
		return Result{}, err
	}
	return res, nil
}

// execute fans the selected strategies out concurrently and waits for all
// of them. Failures are collected instead of cancelling siblings; a
// remote failure additionally feeds the circuit breaker.
func (e *Engine) execute(ctx context.Context, sel Selection, p pair, weights weighting.Profile) (map[string]types.MatchScore, map[string]error) {
	scores := make(map[string]types.MatchScore, len(sel.Strategies))
	failures := make(map[string]error)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, name := range sel.Strategies {
		name := name
		wg.Add(1)
		go func() {
			defer wg.Done()
			score, err := e.runStrategy(ctx, name, p, weights)
			if err != nil && name == strategy.NameRemote {
				e.breaker.RecordFailure(ctx)
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[name] = err
				return
			}
			scores[name] = score
		}()
	}
	wg.Wait()
	return scores, failures
}

// recoverPair handles the degraded phase. Consensus keeps whatever
// survived; a failed single strategy falls back to skills scoring unless
// skills is what failed.
func (e *Engine) recoverPair(ctx context.Context, logger *zap.Logger, sel Selection, p pair, weights weighting.Profile, scores map[string]types.MatchScore, failures map[string]error) {
	for name, err := range failures {
		logger.Warn("strategy failed",
			zap.String("strategy", name),
			zap.Error(err))
	}
	if sel.Consensus || len(scores) > 0 {
		return
	}
	if _, failed := failures[strategy.NameSkills]; failed {
		return
	}

	logger.Warn("falling back to skills scoring")
	score, err := e.runStrategy(ctx, strategy.NameSkills, p, weights)
	if err != nil {
		failures[strategy.NameSkills] = err
		return
	}
	scores[strategy.NameSkills] = score
}

// runStrategy resolves and runs one strategy under the per-strategy
// timeout.
func (e *Engine) runStrategy(ctx context.Context, name string, p pair, weights weighting.Profile) (types.MatchScore, error) {
	st, ok := e.registry.Get(name)
	if !ok {
		return types.MatchScore{}, fmt.Errorf("strategy %q not registered", name)
	}
	ctx, cancel := context.WithTimeout(ctx, e.config.StrategyTimeout)
	defer cancel()
	return st.Score(ctx, p.candidate, p.job, weights)
}

// sortResults orders by descending score, breaking ties on the iterated
// side's identifier so rankings are deterministic regardless of
// completion order.
func sortResults(results []Result, dir Direction) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score.Overall != results[j].Score.Overall {
			return results[i].Score.Overall > results[j].Score.Overall
		}
		if dir == JobToCandidates {
			return results[i].CandidateID < results[j].CandidateID
		}
		return results[i].JobID < results[j].JobID
	})
}
