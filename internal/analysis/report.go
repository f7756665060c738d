package analysis

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Lucas-Iglesia/Thesis-Carola/internal/experiment"
)

const lineWidth = 80

// TextReport renders the human-readable analysis report: run metadata,
// per-profile summaries sorted by mean total score, and the discrimination
// section. detection may be nil when no profile had a usable total_score.
func TextReport(meta experiment.Metadata, aggregates []*ProfileAggregate, detection *Detection) string {
	var b strings.Builder

	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "ATS DISCRIMINATION ANALYSIS REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "EXPERIMENT METADATA")
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "run_id: %s\n", meta.RunID)
	fmt.Fprintf(&b, "start_time: %s\n", meta.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "end_time: %s\n", meta.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "duration_seconds: %.2f\n", meta.DurationSeconds)
	fmt.Fprintf(&b, "provider: %s\n", meta.Provider)
	fmt.Fprintf(&b, "model_name: %s\n", meta.ModelName)
	fmt.Fprintf(&b, "temperature: %.2f\n", meta.Temperature)
	fmt.Fprintf(&b, "iterations_per_config: %d\n", meta.IterationsPerConfig)
	fmt.Fprintf(&b, "concurrency: %d\n", meta.Concurrency)
	fmt.Fprintf(&b, "total_profiles: %d\n", meta.TotalProfiles)
	fmt.Fprintf(&b, "total_evaluations: %d\n", meta.TotalEvaluations)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "PROFILE SCORE SUMMARIES")
	fmt.Fprintln(&b, thin)

	for _, aggregate := range sortByMeanTotal(aggregates) {
		fmt.Fprintf(&b, "\nProfile: %s\n", aggregate.ProfileID)
		fmt.Fprintf(&b, "  Description: %s\n", aggregate.Description)
		fmt.Fprintf(&b, "  Successful iterations: %d/%d\n", aggregate.SuccessCount, aggregate.TotalIterations)

		if stats, ok := aggregate.Scores[experiment.TotalScoreField]; ok {
			fmt.Fprintf(&b, "  Total Score: %.2f +/- %.2f\n", stats.Mean, stats.Stdev)
			fmt.Fprintf(&b, "    Min: %.2f, Max: %.2f, Median: %.2f\n", stats.Min, stats.Max, stats.Median)
		}

		for _, name := range sortedFieldNames(aggregate.Scores) {
			if name == experiment.TotalScoreField || name == "match_percentage" {
				continue
			}
			stats := aggregate.Scores[name]
			fmt.Fprintf(&b, "  %s: %.2f +/- %.2f\n", name, stats.Mean, stats.Stdev)
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "DISCRIMINATION ANALYSIS")
	fmt.Fprintln(&b, thin)

	if detection == nil {
		fmt.Fprintln(&b, "No profiles with a usable total_score; nothing to compare.")
	} else {
		writeDetection(&b, detection)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "END OF REPORT")
	fmt.Fprintln(&b, rule)

	return b.String()
}

func writeDetection(b *strings.Builder, detection *Detection) {
	fmt.Fprintf(b, "Threshold for flagging: %.1f points\n", detection.Threshold)
	fmt.Fprintf(b, "Maximum difference detected: %.2f points\n", detection.MaxDifference)
	fmt.Fprintln(b)

	fmt.Fprintln(b, "Highest scoring profile:")
	fmt.Fprintf(b, "  %s\n", detection.HighestScoringProfile.ProfileID)
	fmt.Fprintf(b, "  %s\n", detection.HighestScoringProfile.Description)
	fmt.Fprintf(b, "  Mean score: %.2f\n", detection.HighestScoringProfile.MeanScore)
	fmt.Fprintln(b)

	fmt.Fprintln(b, "Lowest scoring profile:")
	fmt.Fprintf(b, "  %s\n", detection.LowestScoringProfile.ProfileID)
	fmt.Fprintf(b, "  %s\n", detection.LowestScoringProfile.Description)
	fmt.Fprintf(b, "  Mean score: %.2f\n", detection.LowestScoringProfile.MeanScore)
	fmt.Fprintln(b)

	if detection.PotentialDiscriminationDetected {
		fmt.Fprintln(b, "!! POTENTIAL DISCRIMINATION DETECTED")
		fmt.Fprintf(b, "Score difference (%.2f points) exceeds threshold (%.1f points)\n",
			detection.MaxDifference, detection.Threshold)
	} else {
		fmt.Fprintln(b, "No significant discrimination detected")
	}

	if len(detection.FlaggedComparisons) == 0 {
		return
	}

	fmt.Fprintln(b)
	fmt.Fprintln(b, "FLAGGED COMPARISONS (exceeding threshold):")
	fmt.Fprintln(b, strings.Repeat("-", lineWidth))
	for _, comparison := range detection.FlaggedComparisons {
		fmt.Fprintf(b, "\n%s vs %s\n", comparison.ProfileA, comparison.ProfileB)
		fmt.Fprintf(b, "  %s\n", comparison.ProfileADesc)
		fmt.Fprintln(b, "  vs")
		fmt.Fprintf(b, "  %s\n", comparison.ProfileBDesc)
		fmt.Fprintf(b, "  Score difference: %.2f points\n", comparison.Difference)
		fmt.Fprintf(b, "  (%.2f vs %.2f)\n", comparison.ProfileAScore, comparison.ProfileBScore)
	}
}

// WriteTextReport saves the report next to other run artifacts.
func WriteTextReport(path string, meta experiment.Metadata, aggregates []*ProfileAggregate, detection *Detection) error {
	report := TextReport(meta, aggregates, detection)
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// sortByMeanTotal orders profiles by mean total score descending; profiles
// without one sink to the bottom in their original order.
func sortByMeanTotal(aggregates []*ProfileAggregate) []*ProfileAggregate {
	sorted := append([]*ProfileAggregate(nil), aggregates...)
	sort.SliceStable(sorted, func(a, b int) bool {
		meanA, okA := sorted[a].MeanTotalScore()
		meanB, okB := sorted[b].MeanTotalScore()
		if okA != okB {
			return okA
		}
		return meanA > meanB
	})
	return sorted
}

func sortedFieldNames(scores map[string]FieldStats) []string {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
