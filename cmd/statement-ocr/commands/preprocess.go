package commands

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Register decoders for the page formats scanners produce.
	_ "image/jpeg"
	_ "image/png"

	"github.com/spf13/cobra"

	"statement-ocr/infrastructure/config"
	"statement-ocr/infrastructure/imaging"
)

// NewPreprocessCommand creates the preprocess command.
func NewPreprocessCommand(container *config.Container) *cobra.Command {
	var (
		outputPath string
		zoomFactor float64
		noBinarize bool
	)

	cmd := &cobra.Command{
		Use:   "preprocess [image]",
		Short: "Prepare a scanned page for OCR",
		Long: `Converts a scanned statement page to grayscale, applies Otsu
binarization, and upscales it, the same preparation the recognition pipeline
uses. The result is written as PNG for inspection; no recognition is run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			inputPath := args[0]

			file, err := os.Open(filepath.Clean(inputPath))
			if err != nil {
				return fmt.Errorf("failed to open image: %w", err)
			}
			src, format, err := image.Decode(file)
			if cerr := file.Close(); cerr != nil {
				container.Logger.Error("Failed to close input image", "error", cerr)
			}
			if err != nil {
				return fmt.Errorf("failed to decode image: %w", err)
			}

			opts := imaging.Options{ZoomFactor: zoomFactor, Binarize: !noBinarize}
			prepared := imaging.Prepare(src, opts)

			if outputPath == "" {
				ext := filepath.Ext(inputPath)
				outputPath = strings.TrimSuffix(inputPath, ext) + "_ocr.png"
			}

			out, err := os.Create(filepath.Clean(outputPath))
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer func() {
				if cerr := out.Close(); cerr != nil {
					container.Logger.Error("Failed to close output image", "error", cerr)
				}
			}()

			if err := imaging.EncodePNG(out, prepared); err != nil {
				return err
			}

			container.Logger.Info("Page preprocessed",
				"input", inputPath,
				"input_format", format,
				"output", outputPath,
				"zoom", zoomFactor)
			fmt.Printf("Imagen preparada: %s\n", outputPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output PNG path (default: <input>_ocr.png)")
	cmd.Flags().Float64VarP(&zoomFactor, "zoom", "z", imaging.DefaultZoomFactor, "Upscale factor applied before binarization")
	cmd.Flags().BoolVar(&noBinarize, "no-binarize", false, "Skip Otsu binarization")

	return cmd
}
