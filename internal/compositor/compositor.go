// Package compositor places two equal-sized images side by side and writes
// the result as a JPEG.
package compositor

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/lehigh-university-libraries/imagepair/internal/failure"
	"github.com/lehigh-university-libraries/imagepair/internal/models"
	"github.com/lehigh-university-libraries/imagepair/internal/probe"
	"github.com/lehigh-university-libraries/imagepair/internal/validation"
)

const DefaultQuality = 95

// Compositor combines image pairs. The zero value encodes at DefaultQuality.
type Compositor struct {
	quality int
}

type Option func(*Compositor)

// WithQuality sets the JPEG quality, clamped to 1..100.
func WithQuality(quality int) Option {
	return func(c *Compositor) {
		c.quality = min(max(quality, 1), 100)
	}
}

func New(opts ...Option) *Compositor {
	c := &Compositor{quality: DefaultQuality}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compositor) Quality() int {
	if c == nil || c.quality == 0 {
		return DefaultQuality
	}
	return c.quality
}

// Combine writes pathA and pathB side by side to outputPath.
//
// Both files are re-validated here regardless of what the caller checked:
// supported file, height equal to dims.Height, then width equal to
// dims.Width. Nothing is written unless every check passes, and outputPath
// only appears once the encoded image is complete.
func (c *Compositor) Combine(pathA, pathB string, dims models.Dimensions, outputPath string) (string, error) {
	if dims.Width <= 0 || dims.Height <= 0 {
		return "", failure.New(failure.KindInvalidDimensionInput, "", fmt.Errorf("dimensions %s", dims))
	}

	paths := []string{pathA, pathB}
	for _, path := range paths {
		if err := validation.CheckImageFile(path); err != nil {
			return "", err
		}
	}

	headers := make([]models.Dimensions, len(paths))
	for i, path := range paths {
		d, err := probe.Dimensions(path)
		if err != nil {
			return "", err
		}
		headers[i] = d
	}
	if err := checkDimensions(paths, headers, dims); err != nil {
		return "", err
	}

	imgA, err := decode(pathA)
	if err != nil {
		return "", err
	}
	imgB, err := decode(pathB)
	if err != nil {
		return "", err
	}
	decoded := []models.Dimensions{sizeOf(imgA), sizeOf(imgB)}
	if err := checkDimensions(paths, decoded, dims); err != nil {
		return "", err
	}

	combined := Compose(imgA, imgB, dims)

	if err := c.write(outputPath, combined); err != nil {
		return "", err
	}

	slog.Info("Combined image saved",
		"path", outputPath,
		"width", combined.Bounds().Dx(),
		"height", combined.Bounds().Dy(),
		"quality", c.Quality())
	return outputPath, nil
}

// Compose copies a into the left half and b into the right half of a new
// opaque 2*dims.Width × dims.Height raster. No scaling or blending is
// applied: stored RGB values are kept and alpha is dropped.
func Compose(a, b image.Image, dims models.Dimensions) *image.NRGBA {
	w, h := dims.Width, dims.Height
	dst := image.NewNRGBA(image.Rect(0, 0, 2*w, h))
	copyOpaque(dst, image.Pt(0, 0), a, w, h)
	copyOpaque(dst, image.Pt(w, 0), b, w, h)
	return dst
}

type opaquer interface {
	Opaque() bool
}

// copyOpaque copies a w×h block of src to dp in dst with alpha forced to
// 255. Opaque sources go through draw.Copy; others are copied per pixel from
// their unpremultiplied values.
func copyOpaque(dst *image.NRGBA, dp image.Point, src image.Image, w, h int) {
	sb := src.Bounds()
	sr := image.Rect(sb.Min.X, sb.Min.Y, sb.Min.X+w, sb.Min.Y+h).Intersect(sb)
	if o, ok := src.(opaquer); ok && o.Opaque() {
		draw.Copy(dst, dp, src, sr, draw.Src, nil)
		return
	}

	for y := sr.Min.Y; y < sr.Max.Y; y++ {
		for x := sr.Min.X; x < sr.Max.X; x++ {
			c := unpremultiplied(src.At(x, y))
			c.A = 255
			dst.SetNRGBA(dp.X+x-sr.Min.X, dp.Y+y-sr.Min.Y, c)
		}
	}
}

func unpremultiplied(c color.Color) color.NRGBA {
	switch c := c.(type) {
	case color.NRGBA:
		return c
	case color.NRGBA64:
		return color.NRGBA{R: uint8(c.R >> 8), G: uint8(c.G >> 8), B: uint8(c.B >> 8), A: uint8(c.A >> 8)}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// checkDimensions reports height mismatches before width mismatches, each in
// slot order.
func checkDimensions(paths []string, got []models.Dimensions, want models.Dimensions) error {
	for i, d := range got {
		if d.Height != want.Height {
			return failure.Mismatch(failure.KindHeightMismatch, paths[i], want.Height, d.Height)
		}
	}
	for i, d := range got {
		if d.Width != want.Width {
			return failure.Mismatch(failure.KindWidthMismatch, paths[i], want.Width, d.Width)
		}
	}
	return nil
}

func decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, failure.New(failure.KindUnreadableImage, path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, failure.New(failure.KindUnreadableImage, path, errors.Wrap(err, "decode"))
	}
	return img, nil
}

func sizeOf(img image.Image) models.Dimensions {
	return models.Dimensions{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
}

// outputMode is the permission of a written composite; the process umask
// applies as it would for os.Create.
const outputMode = 0o666

// write encodes img into a temporary file beside outputPath and renames it
// into place.
func (c *Compositor) write(outputPath string, img image.Image) (err error) {
	tmpPath := filepath.Join(filepath.Dir(outputPath), ".combined-"+uuid.NewString()+".tmp")
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, outputMode)
	if err != nil {
		return failure.New(failure.KindEncodeOrWrite, outputPath, errors.Wrap(err, "create temp file"))
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
				slog.Warn("Unable to remove temporary output", "path", tmpPath, "err", rmErr)
			}
		}
	}()

	if err = imaging.Encode(tmp, img, imaging.JPEG, imaging.JPEGQuality(c.Quality())); err != nil {
		return failure.New(failure.KindEncodeOrWrite, outputPath, errors.Wrap(err, "encode jpeg"))
	}
	if err = tmp.Sync(); err != nil {
		return failure.New(failure.KindEncodeOrWrite, outputPath, errors.Wrap(err, "sync"))
	}
	if err = tmp.Close(); err != nil {
		return failure.New(failure.KindEncodeOrWrite, outputPath, errors.Wrap(err, "close"))
	}
	if err = os.Rename(tmpPath, outputPath); err != nil {
		return failure.New(failure.KindEncodeOrWrite, outputPath, errors.Wrap(err, "rename"))
	}
	return nil
}
