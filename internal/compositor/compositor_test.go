package compositor

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/imagepair/internal/failure"
	"github.com/lehigh-university-libraries/imagepair/internal/imagetest"
	"github.com/lehigh-university-libraries/imagepair/internal/models"
)

var (
	red  = color.NRGBA{R: 220, G: 20, B: 20, A: 255}
	blue = color.NRGBA{R: 20, G: 20, B: 220, A: 255}
	dims = models.Dimensions{Width: 300, Height: 200}
)

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func near(t *testing.T, want, got color.Color, tolerance int) {
	t.Helper()
	w, g := rgba(want), rgba(got)
	diff := func(a, b uint8) int {
		d := int(a) - int(b)
		if d < 0 {
			return -d
		}
		return d
	}
	assert.LessOrEqual(t, diff(w.R, g.R), tolerance, "red channel: want %v got %v", w, g)
	assert.LessOrEqual(t, diff(w.G, g.G), tolerance, "green channel: want %v got %v", w, g)
	assert.LessOrEqual(t, diff(w.B, g.B), tolerance, "blue channel: want %v got %v", w, g)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestComposeIsExactBlockCopy(t *testing.T) {
	a := imagetest.Gradient(300, 200, 0)
	b := imagetest.Gradient(300, 200, 77)

	out := Compose(a, b, dims)

	require.Equal(t, image.Rect(0, 0, 600, 200), out.Bounds())
	for y := 0; y < 200; y++ {
		for x := 0; x < 300; x++ {
			require.Equal(t, a.NRGBAAt(x, y), out.NRGBAAt(x, y), "left half at %d,%d", x, y)
			require.Equal(t, b.NRGBAAt(x, y), out.NRGBAAt(x+300, y), "right half at %d,%d", x, y)
		}
	}
}

func TestComposeHonoursSourceOrigin(t *testing.T) {
	big := imagetest.Gradient(20, 20, 5)
	a := big.SubImage(image.Rect(10, 10, 14, 13))
	b := imagetest.Solid(4, 3, blue)

	out := Compose(a, b, models.Dimensions{Width: 4, Height: 3})

	assert.Equal(t, big.NRGBAAt(10, 10), out.NRGBAAt(0, 0))
	assert.Equal(t, big.NRGBAAt(13, 12), out.NRGBAAt(3, 2))
	assert.Equal(t, blue, out.NRGBAAt(4, 0))
}

func TestComposeDropsAlphaKeepingStoredColour(t *testing.T) {
	a := imagetest.Solid(4, 2, color.NRGBA{R: 200, G: 10, B: 10, A: 0})
	b := image.NewNRGBA64(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			b.SetNRGBA64(x, y, color.NRGBA64{R: 0x1000, G: 0x8000, B: 0xf000, A: 0x4000})
		}
	}

	out := Compose(a, b, models.Dimensions{Width: 4, Height: 2})

	assert.Equal(t, color.NRGBA{R: 200, G: 10, B: 10, A: 255}, out.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x80, B: 0xf0, A: 255}, out.NRGBAAt(5, 1))
	assert.True(t, out.Opaque())
}

func TestCombineKeepsColourOfTranslucentPNG(t *testing.T) {
	dir := t.TempDir()
	stored := color.NRGBA{R: 200, G: 10, B: 10, A: 0}
	half := color.NRGBA{R: 20, G: 200, B: 20, A: 128}
	pathA := imagetest.WriteSolidPNG(t, dir, "clear.png", 16, 16, stored)
	pathB := imagetest.WriteSolidPNG(t, dir, "half.png", 16, 16, half)
	out := filepath.Join(dir, "combined.jpg")

	_, err := New().Combine(pathA, pathB, models.Dimensions{Width: 16, Height: 16}, out)
	require.NoError(t, err)

	img := imagetest.Decode(t, out)
	near(t, color.NRGBA{R: 200, G: 10, B: 10, A: 255}, img.At(4, 4), 12)
	near(t, color.NRGBA{R: 20, G: 200, B: 20, A: 255}, img.At(27, 4), 12)
}

func TestCombineOutputHonoursUmask(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := t.TempDir()
	pathA := imagetest.WriteSolidPNG(t, dir, "a.png", 4, 4, red)
	pathB := imagetest.WriteSolidPNG(t, dir, "b.png", 4, 4, blue)
	out := filepath.Join(dir, "combined.jpg")

	_, err := New().Combine(pathA, pathB, models.Dimensions{Width: 4, Height: 4}, out)
	require.NoError(t, err)

	plain, err := os.Create(filepath.Join(dir, "plain.jpg"))
	require.NoError(t, err)
	require.NoError(t, plain.Close())

	got, err := os.Stat(out)
	require.NoError(t, err)
	want, err := os.Stat(plain.Name())
	require.NoError(t, err)
	assert.Equal(t, want.Mode().Perm(), got.Mode().Perm())
}

func TestCombineWritesSideBySideJPEG(t *testing.T) {
	dir := t.TempDir()
	pathA := imagetest.WriteSolidPNG(t, dir, "left.png", 300, 200, red)
	pathB := imagetest.WriteJPEG(t, dir, "right.jpg", imagetest.Solid(300, 200, blue))
	out := filepath.Join(dir, "combined.jpg")

	got, err := New().Combine(pathA, pathB, dims, out)
	require.NoError(t, err)
	assert.Equal(t, out, got)

	img := imagetest.Decode(t, out)
	require.Equal(t, 600, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())

	// sample away from the seam where chroma subsampling blends the halves
	for _, p := range []image.Point{{10, 10}, {150, 100}, {280, 190}} {
		near(t, red, img.At(p.X, p.Y), 12)
	}
	for _, p := range []image.Point{{320, 10}, {450, 100}, {590, 190}} {
		near(t, blue, img.At(p.X, p.Y), 12)
	}

	assert.ElementsMatch(t, []string{"left.png", "right.jpg", "combined.jpg"}, listDir(t, dir))
}

func TestCombineOverwritesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	pathA := imagetest.WriteSolidPNG(t, dir, "a.png", 8, 4, red)
	pathB := imagetest.WriteSolidPNG(t, dir, "b.png", 8, 4, blue)
	out := filepath.Join(dir, "combined.jpg")
	require.NoError(t, os.WriteFile(out, []byte("old"), 0644))

	_, err := New().Combine(pathA, pathB, models.Dimensions{Width: 8, Height: 4}, out)
	require.NoError(t, err)

	img := imagetest.Decode(t, out)
	assert.Equal(t, 16, img.Bounds().Dx())
}

func TestCombineRejectsMismatches(t *testing.T) {
	tests := []struct {
		name     string
		sizeA    image.Point
		sizeB    image.Point
		kind     failure.Kind
		culprit  string
		expected int
		actual   int
	}{
		{
			name:     "second image narrower",
			sizeA:    image.Pt(300, 200),
			sizeB:    image.Pt(250, 200),
			kind:     failure.KindWidthMismatch,
			culprit:  "b.png",
			expected: 300,
			actual:   250,
		},
		{
			name:     "second image shorter",
			sizeA:    image.Pt(300, 200),
			sizeB:    image.Pt(300, 150),
			kind:     failure.KindHeightMismatch,
			culprit:  "b.png",
			expected: 200,
			actual:   150,
		},
		{
			name:     "height is reported before width",
			sizeA:    image.Pt(300, 200),
			sizeB:    image.Pt(250, 150),
			kind:     failure.KindHeightMismatch,
			culprit:  "b.png",
			expected: 200,
			actual:   150,
		},
		{
			name:     "first image checked before second",
			sizeA:    image.Pt(310, 200),
			sizeB:    image.Pt(250, 200),
			kind:     failure.KindWidthMismatch,
			culprit:  "a.png",
			expected: 300,
			actual:   310,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			pathA := imagetest.WriteSolidPNG(t, dir, "a.png", tt.sizeA.X, tt.sizeA.Y, red)
			pathB := imagetest.WriteSolidPNG(t, dir, "b.png", tt.sizeB.X, tt.sizeB.Y, blue)
			out := filepath.Join(dir, "combined.jpg")

			got, err := New().Combine(pathA, pathB, dims, out)
			require.Error(t, err)
			assert.Empty(t, got)

			fe, ok := failure.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, fe.Kind)
			assert.Equal(t, tt.expected, fe.Expected)
			assert.Equal(t, tt.actual, fe.Actual)
			assert.Equal(t, tt.culprit, filepath.Base(fe.Path))

			assert.NoFileExists(t, out)
			assert.ElementsMatch(t, []string{"a.png", "b.png"}, listDir(t, dir))
		})
	}
}

func TestCombineRejectsBadInputs(t *testing.T) {
	dir := t.TempDir()
	good := imagetest.WriteSolidPNG(t, dir, "good.png", 300, 200, red)
	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("hi"), 0644))
	garbage := imagetest.WriteGarbage(t, dir, "broken.png")

	tests := []struct {
		name  string
		pathA string
		pathB string
		dims  models.Dimensions
		kind  failure.Kind
	}{
		{name: "unsupported extension", pathA: good, pathB: text, dims: dims, kind: failure.KindInvalidFile},
		{name: "missing file", pathA: filepath.Join(dir, "gone.png"), pathB: good, dims: dims, kind: failure.KindInvalidFile},
		{name: "corrupt image", pathA: good, pathB: garbage, dims: dims, kind: failure.KindUnreadableImage},
		{name: "zero width", pathA: good, pathB: good, dims: models.Dimensions{Height: 200}, kind: failure.KindInvalidDimensionInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, "combined.jpg")
			_, err := New().Combine(tt.pathA, tt.pathB, tt.dims, out)
			require.Error(t, err)
			assert.Equal(t, tt.kind, failure.KindOf(err))
			assert.NoFileExists(t, out)
		})
	}
}

func TestCombineWriteFailure(t *testing.T) {
	dir := t.TempDir()
	pathA := imagetest.WriteSolidPNG(t, dir, "a.png", 300, 200, red)
	pathB := imagetest.WriteSolidPNG(t, dir, "b.png", 300, 200, blue)
	out := filepath.Join(dir, "no-such-dir", "combined.jpg")

	_, err := New().Combine(pathA, pathB, dims, out)
	require.Error(t, err)
	assert.Equal(t, failure.KindEncodeOrWrite, failure.KindOf(err))
	assert.NoFileExists(t, out)
}

func TestWithQuality(t *testing.T) {
	assert.Equal(t, DefaultQuality, New().Quality())
	assert.Equal(t, 60, New(WithQuality(60)).Quality())
	assert.Equal(t, 100, New(WithQuality(400)).Quality())
	assert.Equal(t, 1, New(WithQuality(-3)).Quality())

	var zero *Compositor
	assert.Equal(t, DefaultQuality, zero.Quality())
}
