// Package probe reads image dimensions from the container header without
// decoding pixel data.
package probe

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/lehigh-university-libraries/imagepair/internal/failure"
	"github.com/lehigh-university-libraries/imagepair/internal/models"
)

// Func matches Dimensions so callers can substitute a fake prober.
type Func func(path string) (models.Dimensions, error)

// Dimensions returns the width and height recorded in the image header at path.
func Dimensions(path string) (models.Dimensions, error) {
	file, err := os.Open(path)
	if err != nil {
		return models.Dimensions{}, failure.New(failure.KindUnreadableImage, path, err)
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return models.Dimensions{}, failure.New(failure.KindUnreadableImage, path, err)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return models.Dimensions{}, failure.New(failure.KindUnreadableImage, path,
			fmt.Errorf("%s header reports %dx%d", format, cfg.Width, cfg.Height))
	}

	return models.Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
