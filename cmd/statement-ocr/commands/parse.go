package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"statement-ocr/domain/interfaces"
	"statement-ocr/infrastructure/config"
)

// NewParseCommand creates the parse command.
func NewParseCommand(container *config.Container) *cobra.Command {
	var (
		outputFormat string
		outputDir    string
		writeFiles   bool
	)

	cmd := &cobra.Command{
		Use:   "parse [input.txt]",
		Short: "Extract structured data from statement text",
		Long: `Detects the issuing bank in a plain-text statement dump (pages separated
by form feeds), runs the bank's parser, and validates the balance arithmetic.
With --write the three result files (DATOS, INGRESOS, EGRESOS) are written to
the output directory; otherwise the full result is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := ValidateFormat(outputFormat); err != nil {
				return err
			}

			ctx := context.Background()

			if outputDir == "" {
				outputDir = container.Config.OutputDir
			}

			params := interfaces.ParseStatementParams{
				InputPath:  args[0],
				OutputDir:  outputDir,
				WriteFiles: writeFiles,
			}

			result, err := container.ParseStatementUseCase.Execute(ctx, params)
			if err != nil {
				return fmt.Errorf("statement parse failed: %w", err)
			}

			if writeFiles {
				fmt.Printf("Extraidas %d transacciones (%d ingresos, %d egresos) en %s\n",
					len(result.Transactions), len(result.Income()), len(result.Expenses()),
					outputDir)
				for _, msg := range result.Balance.Messages {
					fmt.Println(msg)
				}
				return nil
			}

			return NewOutputFormatter(outputFormat).Print(result)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for result files")
	cmd.Flags().BoolVarP(&writeFiles, "write", "w", false, "Write DATOS/INGRESOS/EGRESOS files instead of printing")

	return cmd
}
