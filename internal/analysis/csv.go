package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Lucas-Iglesia/Thesis-Carola/internal/experiment"
)

// WriteSummaryCSV writes the tabular per-profile summary. Only profiles with
// a usable total_score produce a row; the header is always written.
func WriteSummaryCSV(w io.Writer, aggregates []*ProfileAggregate) error {
	writer := csv.NewWriter(w)

	header := []string{
		"profile_id", "description", "iterations",
		"mean_total_score", "stdev_total_score", "min_total_score", "max_total_score",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, aggregate := range aggregates {
		stats, ok := aggregate.Scores[experiment.TotalScoreField]
		if !ok {
			continue
		}

		row := []string{
			aggregate.ProfileID,
			aggregate.Description,
			strconv.Itoa(aggregate.SuccessCount),
			formatScore(stats.Mean),
			formatScore(stats.Stdev),
			formatScore(stats.Min),
			formatScore(stats.Max),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportSummaryCSV writes the summary to a file.
func ExportSummaryCSV(path string, aggregates []*ProfileAggregate) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create csv summary: %w", err)
	}
	defer file.Close()

	return WriteSummaryCSV(file, aggregates)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}
