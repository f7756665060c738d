package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret comes from. File takes precedence over
// Value when both are set.
type Source struct {
	// Name gives error messages context about which secret failed to load.
	Name string
	// Value is an inline secret from configuration or flags.
	Value string
	// File points to a file holding the secret.
	File string
}

// Load resolves the secret from its source and trims surrounding whitespace.
// A source with neither a usable file nor a usable value is an error.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	value := src.Value
	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		if value = string(data); strings.TrimSpace(value) == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
	}

	if value = strings.TrimSpace(value); value == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	return value, nil
}
