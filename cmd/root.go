package cmd

import (
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "ats-probe"
)

type Config struct {
	Provider           string        `mapstructure:"provider"`
	Model              string        `mapstructure:"model"`
	Temperature        float64       `mapstructure:"temperature"`
	Iterations         int           `mapstructure:"iterations"`
	Concurrency        int           `mapstructure:"concurrency"`
	RequestDelay       time.Duration `mapstructure:"request-delay"`
	Threshold          float64       `mapstructure:"threshold"`
	ResultsDir         string        `mapstructure:"results-dir"`
	JobDescriptionFile string        `mapstructure:"job-description-file"`
	Ollama             *OllamaConfig `mapstructure:"ollama"`
	Gemini             *GeminiConfig `mapstructure:"gemini"`
}

type OllamaConfig struct {
	Host string `mapstructure:"host"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-probe runs demographic bias experiments against LLM-based CV scoring",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-probe.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The tool runs fine on built-in defaults; only an explicitly requested
	// config file is required to exist.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && cfgFile == "" {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	return config, nil
}
