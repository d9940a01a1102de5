package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cioinsight/deckgen/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "deckgen",
	Short: "Deckgen - Investment outlook slide deck automation",
	Long: `Deckgen turns the CIO news feed into a finished investment outlook
slide deck.

It collects the newest article per asset category together with its chart
image, merges the articles into a synthesis prompt, asks the configured LLM
for a structured report, and renders the report into the branded PPTX
template for a given location and language.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Deckgen.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("deckgen v0.3.2")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.deckgen/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.deckgen")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match DECKGEN_*
	viper.SetEnvPrefix("DECKGEN")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, the config file, and the secret-bearing
// environment variables into the configuration object handed to the
// pipeline.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Secrets never live in the config file
	if v := os.Getenv("DECKGEN_NEWS_CLIENT_SECRET"); v != "" {
		cfg.News.ClientSecret = v
	}
	if v := os.Getenv("DECKGEN_SYNTH_CLIENT_SECRET"); v != "" {
		cfg.Synthesis.ClientSecret = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Synthesis.APIKey = v
	}
	return cfg, nil
}

// newLogger builds the process logger honoring the verbose flag
func newLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(log)
}
