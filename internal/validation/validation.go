// Package validation holds the pure checks that gate pairing and combining.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/imagepair/internal/failure"
	"github.com/lehigh-university-libraries/imagepair/internal/models"
)

// SupportedExtensions lists the accepted image extensions, lower-cased.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg"}

// IsSupportedExtension reports whether path ends in a supported extension,
// ignoring case.
func IsSupportedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// IsValidImageFile reports whether path is an existing regular file with a
// supported extension. File contents are not inspected.
func IsValidImageFile(path string) bool {
	if path == "" || !IsSupportedExtension(path) {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// CheckImageFile is IsValidImageFile as a typed failure.
func CheckImageFile(path string) error {
	if !IsValidImageFile(path) {
		return failure.New(failure.KindInvalidFile, path, nil)
	}
	return nil
}

// IsValidDimensionPair reports whether both texts are strictly positive
// base-10 integers.
func IsValidDimensionPair(widthText, heightText string) bool {
	_, err := ParseDimensionPair(widthText, heightText)
	return err == nil
}

// ParseDimensionPair parses width and height text. Surrounding whitespace is
// ignored.
func ParseDimensionPair(widthText, heightText string) (models.Dimensions, error) {
	w, err := parsePositive(widthText)
	if err != nil {
		return models.Dimensions{}, failure.New(failure.KindInvalidDimensionInput, "", err)
	}
	h, err := parsePositive(heightText)
	if err != nil {
		return models.Dimensions{}, failure.New(failure.KindInvalidDimensionInput, "", err)
	}
	return models.Dimensions{Width: w, Height: h}, nil
}

func parsePositive(text string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 0)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d is not a positive integer", n)
	}
	return int(n), nil
}
