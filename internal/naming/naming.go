// Package naming derives output paths for combined images.
package naming

import (
	"fmt"
	"path/filepath"
	"time"
)

const (
	// TimestampLayout has second resolution. Two combines into the same
	// directory within one second get the same name and the later one wins.
	TimestampLayout = "20060102_150405"
	Prefix          = "combined_image_"
	Extension       = ".jpg"
)

// NextOutputPath returns dir/combined_image_<YYYYMMDD_HHMMSS>.jpg for now.
func NextOutputPath(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s%s%s", Prefix, now.Format(TimestampLayout), Extension))
}

// Namer produces output paths from a clock.
type Namer struct {
	Now func() time.Time
}

// NewNamer returns a Namer reading the wall clock.
func NewNamer() *Namer {
	return &Namer{Now: time.Now}
}

// Next returns the output path for referenceDir at the current time.
func (n *Namer) Next(referenceDir string) string {
	now := time.Now
	if n != nil && n.Now != nil {
		now = n.Now
	}
	return NextOutputPath(referenceDir, now())
}
