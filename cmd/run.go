package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Lucas-Iglesia/Thesis-Carola/internal/ai"
	"github.com/Lucas-Iglesia/Thesis-Carola/internal/ai/gemini"
	"github.com/Lucas-Iglesia/Thesis-Carola/internal/ai/ollama"
	"github.com/Lucas-Iglesia/Thesis-Carola/internal/analysis"
	"github.com/Lucas-Iglesia/Thesis-Carola/internal/candidates"
	"github.com/Lucas-Iglesia/Thesis-Carola/internal/experiment"
	"github.com/Lucas-Iglesia/Thesis-Carola/internal/logger"
	"github.com/Lucas-Iglesia/Thesis-Carola/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowReport    = "Show report again"
	PromptFlaggedPairs  = "List flagged profile pairs"
	PromptSaveArtifacts = "Save artifacts to disk"
	PromptExit          = "Exit"

	quickIterations = 3
	quickProfiles   = 2
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowReport, PromptFlaggedPairs, PromptSaveArtifacts, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bias experiment over the CV variant catalog",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("iterations", "i", 0, "evaluations per profile (default 10)")
	runCmd.Flags().StringSliceP("profiles", "p", nil, "restrict the run to the given profile ids")
	runCmd.Flags().BoolP("quick", "q", false, "quick test: 2 profiles, 3 iterations each")
	runCmd.Flags().Bool("no-save", false, "do not persist the result artifact")
	runCmd.Flags().BoolP("yes", "y", false, "non-interactive: print the report and exit")

	viper.BindPFlag("iterations", runCmd.Flags().Lookup("iterations"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the ats-probe", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	profiles, iterations, err := selectProfiles(cmd, config)
	if err != nil {
		logger.Fatal("selecting profiles",
			zap.Error(err),
			zap.Strings("available", candidates.Catalog().IDs()),
		)
	}

	job, err := resolveJobDescription(config)
	if err != nil {
		logger.Fatal("loading job description", zap.Error(err))
	}

	completer, err := buildCompleter(ctx, config, logger)
	if err != nil {
		logger.Fatal("building ai completer", zap.Error(err))
	}

	logger.Info("starting the experiment",
		zap.Int("profiles", profiles.Len()),
		zap.Int("iterations_per_profile", iterations),
		zap.String("ai_provider", providerName(config)),
		zap.String("ai_model", completer.Model()),
	)

	subjects := make([]experiment.Subject, 0, profiles.Len())
	for _, profile := range profiles.Items {
		subjects = append(subjects, experiment.Subject{
			ID:          profile.ID,
			Description: profile.Description,
			Text:        candidates.RenderCV(profile),
		})
	}

	runner := experiment.NewRunner(completer, experiment.RunConfig{
		Provider:       providerName(config),
		Model:          config.Model,
		Temperature:    config.Temperature,
		Iterations:     iterations,
		Concurrency:    config.Concurrency,
		RequestDelay:   config.RequestDelay,
		JobDescription: job,
	}, logger)

	result, err := runner.Run(ctx, subjects)
	if err != nil {
		logger.Fatal("running the experiment", zap.Error(err))
	}

	aggregates := analysis.Aggregate(result)

	detection, err := analysis.Detect(aggregates, config.Threshold)
	if err != nil {
		if !errors.Is(err, analysis.ErrInsufficientData) {
			logger.Fatal("discrimination analysis", zap.Error(err))
		}
		// Per-profile aggregation stays useful even with nothing to compare.
		logger.Warn("discrimination analysis skipped", zap.Error(err))
		detection = nil
	}

	report := analysis.TextReport(result.Metadata, aggregates, detection)
	fmt.Println(report)

	saved := false
	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		if err := saveArtifacts(result, aggregates, report, config.ResultsDir, logger); err != nil {
			logger.Fatal("saving artifacts", zap.Error(err))
		}
		saved = true
	}

	if auto, _ := cmd.Flags().GetBool("yes"); auto {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, result, aggregates, detection, report, config, saved, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if action == PromptSaveArtifacts {
			saved = true
		}
	}
}

func handleAction(action string, result *experiment.Result, aggregates []*analysis.ProfileAggregate, detection *analysis.Detection, report string, config *Config, saved bool, logger *zap.Logger) error {
	switch action {
	case PromptShowReport:
		fmt.Println(report)
		return nil
	case PromptFlaggedPairs:
		if detection == nil || len(detection.FlaggedComparisons) == 0 {
			logger.Info("no flagged profile pairs")
			return nil
		}
		pretty, _ := json.MarshalIndent(detection.FlaggedComparisons, "", "  ")
		fmt.Println(string(pretty))
		return nil
	case PromptSaveArtifacts:
		if saved {
			logger.Info("artifacts already saved")
			return nil
		}
		return saveArtifacts(result, aggregates, report, config.ResultsDir, logger)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// saveArtifacts persists the raw result plus its report and csv summary
// side by side, the report and summary named after the artifact.
func saveArtifacts(result *experiment.Result, aggregates []*analysis.ProfileAggregate, report string, dir string, logger *zap.Logger) error {
	path, err := result.Save(dir)
	if err != nil {
		return fmt.Errorf("save result artifact: %w", err)
	}

	base := strings.TrimSuffix(path, ".json")

	if err := os.WriteFile(base+"_report.txt", []byte(report), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := analysis.ExportSummaryCSV(base+"_summary.csv", aggregates); err != nil {
		return err
	}

	logger.Info("saved artifacts",
		zap.String("results", path),
		zap.String("report", base+"_report.txt"),
		zap.String("summary", base+"_summary.csv"),
	)

	return nil
}

// selectProfiles narrows the catalog per flags and settles the iteration
// count. An explicit --iterations wins over the quick-test default.
func selectProfiles(cmd *cobra.Command, config *Config) (*candidates.Profiles, int, error) {
	profiles := candidates.Catalog()

	iterations := config.Iterations
	if cmd.Flags().Changed("iterations") {
		iterations, _ = cmd.Flags().GetInt("iterations")
	}

	if ids, _ := cmd.Flags().GetStringSlice("profiles"); len(ids) > 0 {
		filtered, err := profiles.Filter(ids)
		if err != nil {
			return nil, 0, err
		}
		return filtered, iterations, nil
	}

	if quick, _ := cmd.Flags().GetBool("quick"); quick {
		if !cmd.Flags().Changed("iterations") {
			iterations = quickIterations
		}
		return profiles.First(quickProfiles), iterations, nil
	}

	return profiles, iterations, nil
}

func resolveJobDescription(config *Config) (string, error) {
	file := strings.TrimSpace(config.JobDescriptionFile)
	if file == "" {
		return candidates.DefaultJobDescription(), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading job description from %q: %w", file, err)
	}

	job := strings.TrimSpace(string(data))
	if job == "" {
		return "", fmt.Errorf("job description file %q is empty", file)
	}

	return job, nil
}

func providerName(config *Config) string {
	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider == "" {
		provider = "ollama"
	}
	return provider
}

func buildCompleter(ctx context.Context, config *Config, logger *zap.Logger) (ai.Completer, error) {
	switch provider := providerName(config); provider {
	case "ollama":
		host := ""
		if config.Ollama != nil {
			host = config.Ollama.Host
		}
		return ollama.New(host, config.Model, logger), nil
	case "gemini":
		apiKeyFile := ""
		if config.Gemini != nil {
			apiKeyFile = config.Gemini.APIKeyFile
		}
		if apiKeyFile == "" {
			apiKeyFile = viper.GetString("gemini.api-key-file")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: apiKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		return gemini.NewGenerator(ctx, apiKey, config.Model)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", config.Provider)
	}
}
