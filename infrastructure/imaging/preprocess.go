// Package imaging prepares scanned statement pages for OCR: grayscale
// conversion, Otsu binarization, and upscaling. The output is written for
// inspection; recognition itself happens outside this tool.
package imaging

import (
	"image"
	"image/color"
	"image/png"
	"io"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// DefaultZoomFactor matches the pipeline's render scale for statement pages.
const DefaultZoomFactor = 2.5

// Options controls the preprocessing pipeline.
type Options struct {
	// ZoomFactor upscales the image before binarization. Values <= 1 keep
	// the original size.
	ZoomFactor float64

	// Binarize applies Otsu thresholding after grayscale conversion.
	Binarize bool
}

// DefaultOptions mirrors prepare-for-OCR behavior in production.
func DefaultOptions() Options {
	return Options{ZoomFactor: DefaultZoomFactor, Binarize: true}
}

// Prepare runs the preprocessing pipeline on src and returns the OCR-ready
// grayscale image.
func Prepare(src image.Image, opts Options) *image.Gray {
	gray := ToGray(src)

	if opts.ZoomFactor > 1 {
		gray = Scale(gray, opts.ZoomFactor)
	}

	if opts.Binarize {
		gray = Binarize(gray)
	}

	return gray
}

// ToGray converts any image to 8-bit grayscale.
func ToGray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, src, bounds.Min, draw.Src)
	return gray
}

// Scale resizes a grayscale image by the given factor using Catmull-Rom
// interpolation, which keeps glyph edges sharp enough for recognition.
func Scale(src *image.Gray, factor float64) *image.Gray {
	bounds := src.Bounds()
	w := int(float64(bounds.Dx()) * factor)
	h := int(float64(bounds.Dy()) * factor)
	if w < 1 || h < 1 {
		return src
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

// Binarize applies Otsu's method: the threshold maximizing between-class
// variance over the intensity histogram.
func Binarize(src *image.Gray) *image.Gray {
	threshold := otsuThreshold(src)

	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if src.GrayAt(x, y).Y > threshold {
				dst.SetGray(x, y, color.Gray{Y: 255})
			} else {
				dst.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return dst
}

func otsuThreshold(img *image.Gray) uint8 {
	var hist [256]int
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 128
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[img.GrayAt(x, y).Y]++
		}
	}

	var sum float64
	for i, count := range hist {
		sum += float64(i) * float64(count)
	}

	var (
		sumBackground    float64
		weightBackground int
		maxVariance      float64
		threshold        uint8
	)

	for i := 0; i < 256; i++ {
		weightBackground += hist[i]
		if weightBackground == 0 {
			continue
		}
		weightForeground := total - weightBackground
		if weightForeground == 0 {
			break
		}

		sumBackground += float64(i) * float64(hist[i])
		meanBackground := sumBackground / float64(weightBackground)
		meanForeground := (sum - sumBackground) / float64(weightForeground)

		diff := meanBackground - meanForeground
		variance := float64(weightBackground) * float64(weightForeground) * diff * diff
		if variance > maxVariance {
			maxVariance = variance
			threshold = uint8(i)
		}
	}

	return threshold
}

// EncodePNG writes the image as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return pkgerrors.Wrap(err, "encode png")
	}
	return nil
}
