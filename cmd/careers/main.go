// Package main provides the entry point for the careers page server and its ATS tooling.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/careers-page/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	apiKeyFlag string
)

var rootCmd = &cobra.Command{
	Use:   "careers",
	Short: "Careers page server backed by Greenhouse Harvest",
	Long:  "Careers serves a single job posting with an application form and relays applications to the Greenhouse Harvest API.",
	// Errors are reported once by main
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file (environment variables take precedence)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Greenhouse Harvest API key (overrides GREENHOUSE_API_KEY env var)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers the --api-key flag over the environment, the --config file and the defaults.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath, config.Config{GreenhouseAPIKey: apiKeyFlag})
}
