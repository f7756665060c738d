package candidates

import (
	"strings"

	_ "embed"
)

//go:embed cv.md
var cvTemplate string

// RenderCV fills the shared CV template with the profile's contact block.
func RenderCV(profile *Profile) string {
	replacer := strings.NewReplacer(
		"{{NAME}}", profile.Name,
		"{{EMAIL}}", profile.Email,
		"{{PHONE}}", profile.Phone,
		"{{ADDRESS}}", profile.Address,
		"{{LINKEDIN}}", profile.LinkedIn,
		"{{GITHUB}}", profile.GitHub,
	)

	return strings.TrimSpace(replacer.Replace(cvTemplate))
}
