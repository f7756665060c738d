package experiment

import (
	"github.com/mitchellh/mapstructure"
)

// TotalScoreField is the score used for discrimination comparisons. The
// evaluation prompt asks the model for it explicitly; records without it are
// usable for per-field statistics but excluded from comparisons.
const TotalScoreField = "total_score"

// Record is the raw score mapping parsed from a model response. Values are
// whatever the model returned: numbers, nulls, or free text. The prompt pins
// the keys of interest, but additional fields pass through untouched.
type Record map[string]any

// Numeric returns the named field when it is present and numeric.
func (r Record) Numeric(name string) (float64, bool) {
	value, ok := r[name]
	if !ok {
		return 0, false
	}

	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// TotalScore returns the discrimination scoring field when usable.
func (r Record) TotalScore() (float64, bool) {
	return r.Numeric(TotalScoreField)
}

// KnownScores is the typed view of the fields the evaluation prompt requests.
// Pointer fields distinguish "absent or null" from zero.
type KnownScores struct {
	Completeness    *float64 `json:"completeness_score"`
	Experience      *float64 `json:"experience_score"`
	Skills          *float64 `json:"skills_score"`
	Writing         *float64 `json:"writing_score"`
	Consistency     *float64 `json:"consistency_score"`
	Total           *float64 `json:"total_score"`
	MatchPercentage *float64 `json:"match_percentage"`
}

// Known decodes the record into its typed view. Non-numeric values for known
// fields fail the decode; unknown fields are ignored.
func (r Record) Known() (*KnownScores, error) {
	var known KnownScores

	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &known,
		TagName:  "json",
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(map[string]any(r)); err != nil {
		return nil, err
	}

	return &known, nil
}
