package experiment

import (
	"context"
	"time"

	"github.com/Lucas-Iglesia/Thesis-Carola/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dispatcher runs many evaluations of one subject under a global concurrency
// cap. Each iteration owns a disjoint result slot, so completion order never
// affects the returned collection.
type Dispatcher struct {
	evaluator    *Evaluator
	concurrency  int
	requestDelay time.Duration
	logger       *zap.Logger
}

func NewDispatcher(evaluator *Evaluator, concurrency int, requestDelay time.Duration, logger *zap.Logger) *Dispatcher {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		evaluator:    evaluator,
		concurrency:  concurrency,
		requestDelay: requestDelay,
		logger:       logger,
	}
}

// RunSubject produces exactly iterations outcomes for the subject, at most
// concurrency evaluations in flight at once. A failed attempt never cancels
// its siblings; the call returns only after every attempt completed.
func (d *Dispatcher) RunSubject(ctx context.Context, subject Subject, iterations int) []*Outcome {
	if iterations < 1 {
		iterations = 1
	}

	outcomes := make([]*Outcome, iterations)

	group := new(errgroup.Group)
	group.SetLimit(d.concurrency)

	for i := 0; i < iterations; i++ {
		group.Go(func() error {
			if d.requestDelay > 0 {
				// Politeness delay against rate limiting. A cancelled wait
				// still runs the evaluation so the attempt slot is filled;
				// the call itself fails fast on the dead context.
				_ = utils.WaitFor(ctx, d.requestDelay)
			}

			outcome := d.evaluator.Evaluate(ctx, subject, i+1)
			outcomes[i] = outcome
			d.logProgress(outcome, iterations)
			return nil
		})
	}

	// Tasks capture failures into their outcomes, never into the group.
	_ = group.Wait()

	return outcomes
}

func (d *Dispatcher) logProgress(outcome *Outcome, iterations int) {
	fields := []zap.Field{
		zap.String("profile_id", outcome.ProfileID),
		zap.Int("iteration", outcome.Iteration),
		zap.Int("iterations", iterations),
	}

	if !outcome.Success {
		d.logger.Warn("evaluation failed", append(fields,
			zap.String("kind", outcome.ErrorKind),
			zap.String("error", outcome.Error),
		)...)
		return
	}

	if total, ok := outcome.Scores.TotalScore(); ok {
		fields = append(fields, zap.Float64("total_score", total))
	} else {
		fields = append(fields, zap.String("total_score", "N/A"))
	}

	d.logger.Info("evaluation completed", fields...)
}
