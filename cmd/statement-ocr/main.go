package main

import (
	"os"

	"github.com/spf13/cobra"

	"statement-ocr/cmd/statement-ocr/commands"
	"statement-ocr/infrastructure/config"
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "statement-ocr",
		Short: "Spanish bank statement OCR toolkit",
		Long: `A toolkit around the bank statement extraction pipeline: prefetches the
OCR engine's model artifacts, verifies the installation, and turns extracted
statement text into structured transaction data.`,
	}

	// Global flags
	var configPath string
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		rootCmd.PrintErrf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Create dependency container
	container, err := config.NewContainer(cfg)
	if err != nil {
		rootCmd.PrintErrf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = container.Close()
	}()

	// Add commands
	rootCmd.AddCommand(
		commands.NewSetupCommand(container),
		commands.NewVerifyCommand(container),
		commands.NewParseCommand(container),
		commands.NewPreprocessCommand(container),
		commands.NewVersionCommand(),
	)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
