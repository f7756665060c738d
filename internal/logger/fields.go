package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// ProviderFields returns the standard fields identifying the completion
// backend. Blank values are omitted to keep entries compact.
func ProviderFields(provider, model string) []zap.Field {
	fields := make([]zap.Field, 0, 2)

	if provider = strings.TrimSpace(provider); provider != "" {
		fields = append(fields, zap.String(FieldProvider, provider))
	}
	if model = strings.TrimSpace(model); model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}

	return fields
}

// WithProvider stamps the provider fields onto the logger. A nil logger
// falls back to a no-op logger so call sites never have to check.
func WithProvider(log *zap.Logger, provider, model string) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}

	fields := ProviderFields(provider, model)
	if len(fields) == 0 {
		return log
	}

	return log.With(fields...)
}
