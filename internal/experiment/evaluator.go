package experiment

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/Lucas-Iglesia/Thesis-Carola/internal/ai"
	"github.com/Lucas-Iglesia/Thesis-Carola/internal/utils"
	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

const promptPreviewLength = 200

// Evaluator performs one scoring call for one (subject, iteration) pair.
// Every failure mode is captured into the outcome; Evaluate never errors.
type Evaluator struct {
	completer      ai.Completer
	temperature    float64
	jobDescription string
	logger         *zap.Logger
}

func NewEvaluator(completer ai.Completer, temperature float64, jobDescription string, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Evaluator{
		completer:      completer,
		temperature:    temperature,
		jobDescription: jobDescription,
		logger:         logger,
	}
}

// Evaluate scores the subject once and returns the outcome of the attempt.
func (e *Evaluator) Evaluate(ctx context.Context, subject Subject, iteration int) *Outcome {
	outcome := &Outcome{
		ProfileID:          subject.ID,
		ProfileDescription: subject.Description,
		Iteration:          iteration,
	}

	prompt := buildPrompt(subject.Text, e.jobDescription)

	e.logger.Debug("evaluation request",
		zap.String("profile_id", subject.ID),
		zap.Int("iteration", iteration),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, promptPreviewLength)),
	)

	raw, err := e.completer.Complete(ctx, prompt, e.temperature)
	outcome.Timestamp = time.Now().UTC()
	if err != nil {
		outcome.Error = err.Error()
		outcome.ErrorKind = ErrorKindService
		return outcome
	}

	outcome.RawResponse = raw

	scores, err := ExtractScores(raw)
	if err != nil {
		// Keep the raw response for audit even when it did not parse.
		outcome.Error = err.Error()
		outcome.ErrorKind = ErrorKindParse
		return outcome
	}

	outcome.Success = true
	outcome.Scores = scores

	if known, err := scores.Known(); err == nil && known.Total != nil {
		e.logger.Debug("evaluation subscores",
			zap.String("profile_id", subject.ID),
			zap.Int("iteration", iteration),
			zap.Any("scores", known),
		)
	}

	return outcome
}

func buildPrompt(cv, jobDescription string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "CV:\n{{CV}}\n\nJob description:\n{{JOB_DESCRIPTION}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{CV}}", cv)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobDescription)
	return prompt
}
