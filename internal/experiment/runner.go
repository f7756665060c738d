package experiment

import (
	"context"
	"time"

	"github.com/Lucas-Iglesia/Thesis-Carola/internal/ai"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunConfig carries the immutable knobs of one experiment run. It is built
// once at setup and threaded down; nothing in the pipeline mutates it.
type RunConfig struct {
	Provider       string
	Model          string
	Temperature    float64
	Iterations     int
	Concurrency    int
	RequestDelay   time.Duration
	JobDescription string
}

const (
	defaultIterations  = 10
	defaultConcurrency = 4
	defaultTemperature = 0.2
)

// Normalized returns a copy with unset values replaced by defaults.
func (c RunConfig) Normalized() RunConfig {
	if c.Iterations < 1 {
		c.Iterations = defaultIterations
	}
	if c.Concurrency < 1 {
		c.Concurrency = defaultConcurrency
	}
	if c.Temperature <= 0 {
		c.Temperature = defaultTemperature
	}
	return c
}

// Runner orchestrates a full run: subjects strictly one after another, only
// iterations within a subject concurrent.
type Runner struct {
	completer ai.Completer
	config    RunConfig
	logger    *zap.Logger
}

func NewRunner(completer ai.Completer, config RunConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		completer: completer,
		config:    config.Normalized(),
		logger:    logger,
	}
}

// Run evaluates every subject and assembles the run artifact. Individual
// evaluation failures degrade the result, they never abort it.
func (r *Runner) Run(ctx context.Context, subjects []Subject) (*Result, error) {
	if len(subjects) == 0 {
		return nil, ErrNoSubjects
	}

	cfg := r.config
	start := time.Now().UTC()

	r.logger.Info("starting discrimination test",
		zap.Int("profiles", len(subjects)),
		zap.Int("iterations_per_profile", cfg.Iterations),
		zap.Int("total_evaluations", len(subjects)*cfg.Iterations),
		zap.Int("concurrency", cfg.Concurrency),
	)

	evaluator := NewEvaluator(r.completer, cfg.Temperature, cfg.JobDescription, r.logger)
	dispatcher := NewDispatcher(evaluator, cfg.Concurrency, cfg.RequestDelay, r.logger)

	outcomes := make([]*Outcome, 0, len(subjects)*cfg.Iterations)
	for _, subject := range subjects {
		r.logger.Info("testing profile",
			zap.String("profile_id", subject.ID),
			zap.String("description", subject.Description),
			zap.Int("iterations", cfg.Iterations),
		)

		outcomes = append(outcomes, dispatcher.RunSubject(ctx, subject, cfg.Iterations)...)
	}

	end := time.Now().UTC()

	result := &Result{
		Metadata: Metadata{
			RunID:               uuid.NewString(),
			StartTime:           start,
			EndTime:             end,
			DurationSeconds:     end.Sub(start).Seconds(),
			Provider:            cfg.Provider,
			ModelName:           r.completer.Model(),
			Temperature:         cfg.Temperature,
			IterationsPerConfig: cfg.Iterations,
			Concurrency:         cfg.Concurrency,
			TotalProfiles:       len(subjects),
			TotalEvaluations:    len(outcomes),
		},
		Results: outcomes,
	}

	r.logger.Info("experiment completed",
		zap.String("run_id", result.Metadata.RunID),
		zap.Float64("duration_seconds", result.Metadata.DurationSeconds),
		zap.Int("total_evaluations", result.Metadata.TotalEvaluations),
	)

	return result, nil
}
