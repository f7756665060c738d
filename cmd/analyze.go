package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Lucas-Iglesia/Thesis-Carola/internal/analysis"
	"github.com/Lucas-Iglesia/Thesis-Carola/internal/experiment"
	"github.com/Lucas-Iglesia/Thesis-Carola/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <results-file.json>",
	Short: "Re-analyze a previously saved result artifact",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Bool("no-save", false, "print the report without writing report and summary files")
}

func analyze(cmd *cobra.Command, path string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	result, err := experiment.Load(path)
	if err != nil {
		logger.Fatal("loading result artifact", zap.Error(err))
	}

	logger.Info("loaded result artifact",
		zap.String("path", path),
		zap.String("run_id", result.Metadata.RunID),
		zap.Int("outcomes", len(result.Results)),
	)

	aggregates := analysis.Aggregate(result)

	detection, err := analysis.Detect(aggregates, config.Threshold)
	if err != nil {
		if !errors.Is(err, analysis.ErrInsufficientData) {
			logger.Fatal("discrimination analysis", zap.Error(err))
		}
		logger.Warn("discrimination analysis skipped", zap.Error(err))
		detection = nil
	}

	report := analysis.TextReport(result.Metadata, aggregates, detection)
	fmt.Println(report)

	if noSave, _ := cmd.Flags().GetBool("no-save"); noSave {
		return
	}

	base := strings.TrimSuffix(path, ".json")

	if err := analysis.WriteTextReport(base+"_report.txt", result.Metadata, aggregates, detection); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}
	if err := analysis.ExportSummaryCSV(base+"_summary.csv", aggregates); err != nil {
		logger.Fatal("writing csv summary", zap.Error(err))
	}

	logger.Info("saved analysis artifacts",
		zap.String("report", base+"_report.txt"),
		zap.String("summary", base+"_summary.csv"),
	)
}
