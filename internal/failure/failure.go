// Package failure defines the typed errors returned by the image pairing core.
//
// Callers switch on Kind instead of matching message text. Every failure is
// recoverable by the user supplying different input; nothing here is fatal.
package failure

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidFile means the path is missing or has an unsupported extension.
	KindInvalidFile
	// KindUnreadableImage means the file could not be parsed as PNG or JPEG.
	KindUnreadableImage
	// KindInvalidDimensionInput means width or height text is non-numeric or not positive.
	KindInvalidDimensionInput
	KindHeightMismatch
	KindWidthMismatch
	// KindEncodeOrWrite covers codec and filesystem errors while persisting output.
	KindEncodeOrWrite
	// KindNoReferenceDimensions means slot B was set before slot A.
	KindNoReferenceDimensions
	// KindMissingImage means a combine was requested without both slots filled.
	KindMissingImage
)

var kindNames = map[Kind]string{
	KindUnknown:               "unknown",
	KindInvalidFile:           "invalid_file",
	KindUnreadableImage:       "unreadable_image",
	KindInvalidDimensionInput: "invalid_dimension_input",
	KindHeightMismatch:        "height_mismatch",
	KindWidthMismatch:         "width_mismatch",
	KindEncodeOrWrite:         "encode_or_write_failure",
	KindNoReferenceDimensions: "no_reference_dimensions",
	KindMissingImage:          "missing_image",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText lets kinds appear by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown failure kind %q", text)
}

// Error is a classified failure. Expected and Actual are only meaningful for
// the mismatch kinds.
type Error struct {
	Kind     Kind
	Path     string
	Expected int
	Actual   int
	Err      error
}

func (e *Error) Error() string {
	name := "file"
	if e.Path != "" {
		name = filepath.Base(e.Path)
	}
	switch e.Kind {
	case KindInvalidFile:
		return fmt.Sprintf("%s is not a valid image file (PNG, JPG, JPEG)", name)
	case KindUnreadableImage:
		if e.Err != nil {
			return fmt.Sprintf("unable to read image dimensions of %s: %v", name, e.Err)
		}
		return fmt.Sprintf("unable to read image dimensions of %s", name)
	case KindInvalidDimensionInput:
		return "width and height must be positive integers"
	case KindHeightMismatch:
		return fmt.Sprintf("%s has height %d pixels, expected %d", name, e.Actual, e.Expected)
	case KindWidthMismatch:
		return fmt.Sprintf("%s has width %d pixels, expected %d", name, e.Actual, e.Expected)
	case KindEncodeOrWrite:
		return fmt.Sprintf("failed to write combined image %s: %v", name, e.Err)
	case KindNoReferenceDimensions:
		return "no reference dimensions yet, select the first image before the second"
	case KindMissingImage:
		return "please select exactly two images"
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a failure of the given kind for path.
func New(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Mismatch returns a height or width mismatch failure.
func Mismatch(kind Kind, path string, expected, actual int) *Error {
	return &Error{Kind: kind, Path: path, Expected: expected, Actual: actual}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Is reports whether err carries a failure of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var fe *Error
	ok := errors.As(err, &fe)
	return fe, ok
}
