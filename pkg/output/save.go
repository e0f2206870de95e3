package output

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/mrjoshuak/go-jpeg2000"
	"golang.org/x/image/tiff"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// ErrUnknownFormat is returned for output paths with an unsupported extension
var ErrUnknownFormat = errors.New("unknown output format")

// Format identifies an image encoding
type Format string

// Supported formats
const (
	FormatPPM   Format = "ppm"
	FormatPPMGz Format = "ppm.gz"
	FormatPNG   Format = "png"
	FormatTIFF  Format = "tiff"
	FormatJ2K   Format = "j2k"
)

// Formats lists every supported format in the order they are documented
var Formats = []Format{FormatPPM, FormatPPMGz, FormatPNG, FormatTIFF, FormatJ2K}

// FormatFromPath picks the format from a file name's extension
func FormatFromPath(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))

	switch {
	case strings.HasSuffix(name, ".ppm.gz"):
		return FormatPPMGz, nil
	case strings.HasSuffix(name, ".ppm"):
		return FormatPPM, nil
	case strings.HasSuffix(name, ".png"):
		return FormatPNG, nil
	case strings.HasSuffix(name, ".tif"), strings.HasSuffix(name, ".tiff"):
		return FormatTIFF, nil
	case strings.HasSuffix(name, ".j2k"), strings.HasSuffix(name, ".j2c"):
		return FormatJ2K, nil
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, path, SupportedExtensions())
}

// SupportedExtensions lists the file extension of every entry in Formats
func SupportedExtensions() string {
	exts := make([]string, len(Formats))
	for i, format := range Formats {
		exts[i] = "." + string(format)
	}
	return strings.Join(exts, ", ")
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img *renderer.Image, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPPMGz:
		zw := gzip.NewWriter(w)
		if err := WritePPM(zw, img); err != nil {
			zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("failed to finish gzip stream: %w", err)
		}
		return nil
	case FormatPNG:
		if err := png.Encode(w, ToRGBA(img)); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
		return nil
	case FormatTIFF:
		if err := tiff.Encode(w, ToRGBA(img), &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
			return fmt.Errorf("failed to encode TIFF: %w", err)
		}
		return nil
	case FormatJ2K:
		opts := &jpeg2000.Options{
			Format:   jpeg2000.FormatJ2K, // Raw codestream, no JP2 wrapper
			Lossless: true,
		}
		if err := jpeg2000.Encode(w, ToRGBA(img), opts); err != nil {
			return fmt.Errorf("failed to encode JPEG 2000: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes img to path, choosing the encoder from the extension.
// The parent directory must exist.
func Save(path string, img *renderer.Image) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing %s: %w", path, closeErr)
		}
	}()

	return Encode(file, img, format)
}
