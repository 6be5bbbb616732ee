package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Bapt252/Commitment--sub002/internal/config"
	"github.com/Bapt252/Commitment--sub002/internal/engine"
	"github.com/Bapt252/Commitment--sub002/internal/extractor"
	"github.com/Bapt252/Commitment--sub002/internal/logger"
	"github.com/Bapt252/Commitment--sub002/internal/observability"
	"github.com/Bapt252/Commitment--sub002/internal/store"
	"github.com/Bapt252/Commitment--sub002/internal/strategy"
	"github.com/Bapt252/Commitment--sub002/internal/travel"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank job offers for a candidate, or candidates for a job offer",
	Long: "Rank job offers for a candidate (--candidate plus --jobs) or candidates for a job offer " +
		"(--job plus --candidates). Records are structured JSON, as produced by the document extractor.",
	RunE: runMatch,
}

var (
	candidateFile  string
	jobsFile       string
	jobFile        string
	candidatesFile string
	strategyName   string
	limit          int
	direction      string
	outputJSON     bool
	matchTimeout   time.Duration
)

func init() {
	matchCmd.Flags().StringVar(&candidateFile, "candidate", "", "Path to a candidate JSON record")
	matchCmd.Flags().StringVar(&jobsFile, "jobs", "", "Path to a JSON array of job offers")
	matchCmd.Flags().StringVar(&jobFile, "job", "", "Path to a job offer JSON record")
	matchCmd.Flags().StringVar(&candidatesFile, "candidates", "", "Path to a JSON array of candidates")
	matchCmd.Flags().StringVarP(&strategyName, "strategy", "s", "", "Scoring strategy name (default from config, normally auto)")
	matchCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results to return (default from config)")
	matchCmd.Flags().StringVar(&direction, "direction", "", "candidate_to_jobs or job_to_candidates (inferred from flags when unset)")
	matchCmd.Flags().BoolVar(&outputJSON, "output-json", false, "Print results as JSON instead of text")
	matchCmd.Flags().DurationVar(&matchTimeout, "timeout", time.Minute, "Overall request timeout")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	applyLogFlags(cmd, &cfg)

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}

	dir, err := resolveFlagDirection()
	if err != nil {
		return err
	}

	req, err := buildRequest(cfg, dir)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Log.Debug && !outputJSON {
		printer.PrintCandidate(req.Candidate)
		printer.PrintJobOffer(req.Job)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), matchTimeout)
	defer cancel()

	eng, cleanup, err := buildEngine(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := eng.Match(ctx, req)
	if err != nil {
		return err
	}

	return printResults(printer, results, dir)
}

// applyLogFlags lets --json and --debug override the loaded config.
func applyLogFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("json") {
		cfg.Log.JSON, _ = cmd.Flags().GetBool("json")
	}
	if cmd.Flags().Changed("debug") {
		cfg.Log.Debug, _ = cmd.Flags().GetBool("debug")
	}
}

// resolveFlagDirection infers the match direction from the file flags and
// checks it against an explicit --direction.
func resolveFlagDirection() (engine.Direction, error) {
	candidateMode := candidateFile != "" || jobsFile != ""
	jobMode := jobFile != "" || candidatesFile != ""

	if candidateMode && jobMode {
		return "", fmt.Errorf("--candidate/--jobs and --job/--candidates are mutually exclusive; provide only one pair")
	}

	inferred := engine.CandidateToJobs
	if jobMode {
		inferred = engine.JobToCandidates
	}

	switch direction {
	case "":
		return inferred, nil
	case string(engine.CandidateToJobs), string(engine.JobToCandidates):
		if (candidateMode || jobMode) && direction != string(inferred) {
			return "", fmt.Errorf("--direction %s contradicts the provided record flags", direction)
		}
		return engine.Direction(direction), nil
	default:
		return "", fmt.Errorf("unknown --direction %q", direction)
	}
}

// buildRequest loads the JSON records the direction calls for.
func buildRequest(cfg config.Config, dir engine.Direction) (engine.Request, error) {
	chosenStrategy := strategyName
	if chosenStrategy == "" {
		chosenStrategy = cfg.Scoring.Strategy
	}
	chosenLimit := limit
	if chosenLimit <= 0 {
		chosenLimit = cfg.Scoring.Limit
	}

	req := engine.Request{
		Options: engine.Options{
			Strategy:  chosenStrategy,
			Limit:     chosenLimit,
			Direction: dir,
		},
	}

	if dir == engine.JobToCandidates {
		if jobFile == "" {
			return engine.Request{}, fmt.Errorf("--job is required in job_to_candidates mode")
		}
		job, err := extractor.LoadJobOffer(jobFile)
		if err != nil {
			return engine.Request{}, err
		}
		req.Job = job

		if candidatesFile != "" {
			candidates, err := extractor.LoadCandidates(candidatesFile)
			if err != nil {
				return engine.Request{}, err
			}
			req.Candidates = candidates
		}
		return req, nil
	}

	if candidateFile == "" || jobsFile == "" {
		return engine.Request{}, fmt.Errorf("--candidate and --jobs are both required in candidate_to_jobs mode")
	}
	candidate, err := extractor.LoadCandidate(candidateFile)
	if err != nil {
		return engine.Request{}, err
	}
	jobs, err := extractor.LoadJobOffers(jobsFile)
	if err != nil {
		return engine.Request{}, err
	}
	req.Candidate = candidate
	req.Jobs = jobs
	return req, nil
}

// buildEngine wires the store, the collaborators, and the engine from the
// configuration. The returned cleanup releases the store.
func buildEngine(ctx context.Context, cfg config.Config, log *zap.Logger) (*engine.Engine, func(), error) {
	var st store.Store
	cleanup := func() {}

	if cfg.Database.URL != "" {
		pg, err := store.ConnectPostgres(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to the database: %w", err)
		}
		if err := pg.Init(ctx); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("preparing the cache table: %w", err)
		}
		st = pg
		cleanup = pg.Close
	} else {
		st = store.NewMemoryStore(0)
	}

	var estimator travel.Estimator
	if cfg.Travel.BaseURL != "" {
		estimator = travel.NewHTTPEstimator(cfg.Travel.BaseURL, cfg.Travel.APIKey, cfg.Travel.Timeout)
	}

	var scorer strategy.ScoreClient
	if cfg.Remote.BaseURL != "" {
		client, err := strategy.NewHTTPScoreClient(cfg.Remote.BaseURL, cfg.Remote.APIKey, cfg.Remote.Timeout)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("building the scoring client: %w", err)
		}
		scorer = client
	}

	eng, err := engine.New(engine.Config{
		MaxConcurrency:   cfg.Engine.MaxConcurrency,
		StrategyTimeout:  cfg.Engine.StrategyTimeout,
		RemoteTimeout:    cfg.Remote.Timeout,
		BreakerThreshold: cfg.Breaker.Threshold,
		BreakerWindow:    cfg.Breaker.Window,
		Travel: travel.CacheConfig{
			SuccessTTL:  cfg.Travel.SuccessTTL,
			DegradedTTL: cfg.Travel.DegradedTTL,
			Timeout:     cfg.Travel.Timeout,
		},
	}, engine.Deps{
		Store:     st,
		Estimator: estimator,
		Scorer:    scorer,
		Logger:    log,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("building the engine: %w", err)
	}
	return eng, cleanup, nil
}

func printResults(printer *observability.Printer, results []engine.Result, dir engine.Direction) error {
	if outputJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	printer.PrintResults(results, dir)
	return nil
}
