package ai

import "context"

// Completer is a text-completion backend used to score candidate documents.
// Implementations send a single free-form prompt and return the raw textual
// response.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
	Model() string
}
