package analysis

import (
	"errors"
	"math"
	"sort"
)

// DefaultThreshold is the mean-score gap above which a pair is flagged.
const DefaultThreshold = 5.0

// ErrInsufficientData is returned when no profile carries a usable
// total_score; per-field aggregation stays valid regardless.
var ErrInsufficientData = errors.New("no profiles with a usable total_score to compare")

// ProfileScore identifies one profile and its mean total score.
type ProfileScore struct {
	ProfileID   string  `json:"profile_id"`
	Description string  `json:"description"`
	MeanScore   float64 `json:"mean_score"`
}

// Comparison is one unordered pair of profiles with their mean total scores.
type Comparison struct {
	ProfileA                string  `json:"profile_a"`
	ProfileADesc            string  `json:"profile_a_desc"`
	ProfileAScore           float64 `json:"profile_a_score"`
	ProfileB                string  `json:"profile_b"`
	ProfileBDesc            string  `json:"profile_b_desc"`
	ProfileBScore           float64 `json:"profile_b_score"`
	Difference              float64 `json:"difference"`
	PotentialDiscrimination bool    `json:"potential_discrimination"`
}

// Detection is the full discrimination analysis over one set of aggregates.
type Detection struct {
	Threshold                       float64      `json:"threshold"`
	MaxDifference                   float64      `json:"max_difference"`
	HighestScoringProfile           ProfileScore `json:"highest_scoring_profile"`
	LowestScoringProfile            ProfileScore `json:"lowest_scoring_profile"`
	PotentialDiscriminationDetected bool         `json:"potential_discrimination_detected"`
	AllComparisons                  []Comparison `json:"all_comparisons"`
	FlaggedComparisons              []Comparison `json:"flagged_comparisons"`
}

// Detect compares mean total scores across profiles and flags gaps strictly
// above the threshold. A gap exactly equal to the threshold is not flagged.
//
// Profiles without a usable total_score are excluded from comparison but not
// an error; only an empty comparison set is. Extremal-profile ties resolve to
// the first profile in aggregate order, and equal pairwise differences keep
// the i<j generation order.
func Detect(aggregates []*ProfileAggregate, threshold float64) (*Detection, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	usable := make([]ProfileScore, 0, len(aggregates))
	for _, aggregate := range aggregates {
		if mean, ok := aggregate.MeanTotalScore(); ok {
			usable = append(usable, ProfileScore{
				ProfileID:   aggregate.ProfileID,
				Description: aggregate.Description,
				MeanScore:   round2(mean),
			})
		}
	}

	if len(usable) == 0 {
		return nil, ErrInsufficientData
	}

	highest, lowest := usable[0], usable[0]
	for _, score := range usable[1:] {
		if score.MeanScore > highest.MeanScore {
			highest = score
		}
		if score.MeanScore < lowest.MeanScore {
			lowest = score
		}
	}

	gap := round2(highest.MeanScore - lowest.MeanScore)

	comparisons := make([]Comparison, 0, len(usable)*(len(usable)-1)/2)
	for i := 0; i < len(usable); i++ {
		for j := i + 1; j < len(usable); j++ {
			diff := round2(math.Abs(usable[i].MeanScore - usable[j].MeanScore))
			comparisons = append(comparisons, Comparison{
				ProfileA:                usable[i].ProfileID,
				ProfileADesc:            usable[i].Description,
				ProfileAScore:           usable[i].MeanScore,
				ProfileB:                usable[j].ProfileID,
				ProfileBDesc:            usable[j].Description,
				ProfileBScore:           usable[j].MeanScore,
				Difference:              diff,
				PotentialDiscrimination: diff > threshold,
			})
		}
	}

	sort.SliceStable(comparisons, func(a, b int) bool {
		return comparisons[a].Difference > comparisons[b].Difference
	})

	flagged := make([]Comparison, 0)
	for _, comparison := range comparisons {
		if comparison.PotentialDiscrimination {
			flagged = append(flagged, comparison)
		}
	}

	return &Detection{
		Threshold:                       threshold,
		MaxDifference:                   gap,
		HighestScoringProfile:           highest,
		LowestScoringProfile:            lowest,
		PotentialDiscriminationDetected: gap > threshold,
		AllComparisons:                  comparisons,
		FlaggedComparisons:              flagged,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
