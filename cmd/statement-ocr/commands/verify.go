package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"statement-ocr/domain/interfaces"
	"statement-ocr/infrastructure/config"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(container *config.Container) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Report the state of the OCR installation",
		Long: `Inspects the model cache and the backup OCR engine without modifying
anything: which model artifacts are present, and whether the backup engine
binary is reachable on PATH.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := ValidateFormat(outputFormat); err != nil {
				return err
			}

			ctx := context.Background()

			params := interfaces.VerifyInstallParams{
				ModelsDir: container.Config.ModelsDir,
				Profile:   container.Config.EngineProfile(),
			}

			report, err := container.VerifyInstallUseCase.Execute(ctx, params)
			if err != nil {
				return fmt.Errorf("install inspection failed: %w", err)
			}

			return NewOutputFormatter(outputFormat).Print(report)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, yaml)")

	return cmd
}
