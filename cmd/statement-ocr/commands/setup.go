package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"statement-ocr/domain/interfaces"
	"statement-ocr/infrastructure/config"
)

// NewSetupCommand creates the setup command. It takes no flags or arguments
// of its own: the engine profile is fixed (Spanish, angle classification on,
// CPU only) and only the models directory comes from configuration.
func NewSetupCommand(container *config.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Prefetch the OCR engine models",
		Long: `Downloads the primary OCR engine's model artifacts into the local cache,
skipping any artifact already present. Also prints the manual install steps
for the backup OCR engine; those steps are informational only and are never
executed.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			// The backup engine cannot be installed programmatically on
			// every OS; operators follow these steps by hand.
			fmt.Println(container.BackupEngineProbe.Instructions())
			fmt.Println()

			params := interfaces.SetupModelsParams{
				ModelsDir: container.Config.ModelsDir,
				Profile:   container.Config.EngineProfile(),
			}

			result, err := container.SetupModelsUseCase.Execute(ctx, params)
			if err != nil {
				return fmt.Errorf("model prefetch failed: %w", err)
			}

			for _, name := range result.Downloaded {
				fmt.Printf("Descargado: %s\n", name)
			}
			for _, name := range result.CacheHits {
				fmt.Printf("En cache:   %s\n", name)
			}

			fmt.Println(setupCompletionMessage)
			return nil
		},
	}
}
