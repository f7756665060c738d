package candidates

import (
	"strings"

	_ "embed"
)

//go:embed job.md
var defaultJob string

// DefaultJobDescription returns the job posting every CV variant is scored
// against when the caller does not supply one.
func DefaultJobDescription() string {
	return strings.TrimSpace(defaultJob)
}
