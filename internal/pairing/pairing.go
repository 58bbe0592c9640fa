// Package pairing tracks the two image slots of a combine session and the
// dimensions locked from the first image.
//
// A State is owned by one UI session and is not safe for concurrent use; the
// owner serialises calls.
package pairing

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/imagepair/internal/compositor"
	"github.com/lehigh-university-libraries/imagepair/internal/failure"
	"github.com/lehigh-university-libraries/imagepair/internal/models"
	"github.com/lehigh-university-libraries/imagepair/internal/naming"
	"github.com/lehigh-university-libraries/imagepair/internal/probe"
	"github.com/lehigh-university-libraries/imagepair/internal/validation"
)

// Combiner writes a composite of two images. *compositor.Compositor
// satisfies it.
type Combiner interface {
	Combine(pathA, pathB string, dims models.Dimensions, outputPath string) (string, error)
}

type State struct {
	slotA string
	slotB string

	dims   models.Dimensions
	locked bool

	// consistency is the judgment on slotB; Unset until slotB is assigned.
	consistency models.Consistency
	slotBDims   models.Dimensions

	lastOutput string

	probe    probe.Func
	combiner Combiner
	namer    *naming.Namer
}

type Option func(*State)

func WithProber(fn probe.Func) Option {
	return func(s *State) { s.probe = fn }
}

func WithCombiner(c Combiner) Option {
	return func(s *State) { s.combiner = c }
}

func WithNamer(n *naming.Namer) Option {
	return func(s *State) { s.namer = n }
}

// New returns an empty State using the real prober, compositor and clock
// unless overridden.
func New(opts ...Option) *State {
	s := &State{
		probe:    probe.Dimensions,
		combiner: compositor.New(),
		namer:    naming.NewNamer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetSlotA assigns the first image and locks dimensions to its size. Slot B
// and any earlier consistency judgment are discarded. On failure the State
// is left exactly as it was.
func (s *State) SetSlotA(path string) (models.Dimensions, error) {
	if err := validation.CheckImageFile(path); err != nil {
		return models.Dimensions{}, err
	}

	dims, err := s.probe(path)
	if err != nil {
		return models.Dimensions{}, err
	}

	s.slotA = path
	s.dims = dims
	s.locked = true
	s.clearSlotB()

	slog.Debug("Slot A set", "path", path, "dimensions", dims.String())
	return dims, nil
}

// SetSlotB assigns the second image and compares its height to the locked
// height. A height mismatch still records slot B and returns a
// HeightMismatch failure so the UI can warn early; Combine checks again.
// Width is deliberately not compared here.
func (s *State) SetSlotB(path string) (models.Dimensions, error) {
	if !s.locked {
		return models.Dimensions{}, failure.New(failure.KindNoReferenceDimensions, path, nil)
	}
	if err := validation.CheckImageFile(path); err != nil {
		return models.Dimensions{}, err
	}

	dims, err := s.probe(path)
	if err != nil {
		return models.Dimensions{}, err
	}

	s.slotB = path
	s.slotBDims = dims
	if dims.Height != s.dims.Height {
		s.consistency = models.ConsistencyMismatched
		slog.Debug("Slot B height mismatch", "path", path, "expected", s.dims.Height, "actual", dims.Height)
		return dims, failure.Mismatch(failure.KindHeightMismatch, path, s.dims.Height, dims.Height)
	}

	s.consistency = models.ConsistencyMatched
	slog.Debug("Slot B set", "path", path, "dimensions", dims.String())
	return dims, nil
}

// Combine composites slot A and slot B into the directory of slot A.
//
// widthText and heightText are the UI's dimension fields; an empty field
// falls back to the locked value. On success both slots are cleared and the
// dimension lock is kept.
func (s *State) Combine(widthText, heightText string) (string, error) {
	if s.slotA == "" || s.slotB == "" {
		return "", failure.New(failure.KindMissingImage, "", nil)
	}
	for _, path := range []string{s.slotA, s.slotB} {
		if err := validation.CheckImageFile(path); err != nil {
			return "", err
		}
	}

	if strings.TrimSpace(widthText) == "" {
		widthText = s.dims.WidthText()
	}
	if strings.TrimSpace(heightText) == "" {
		heightText = s.dims.HeightText()
	}
	dims, err := validation.ParseDimensionPair(widthText, heightText)
	if err != nil {
		return "", err
	}

	outputPath := s.namer.Next(filepath.Dir(s.slotA))
	out, err := s.combiner.Combine(s.slotA, s.slotB, dims, outputPath)
	if err != nil {
		return "", err
	}

	s.lastOutput = out
	s.slotA = ""
	s.clearSlotB()
	return out, nil
}

func (s *State) clearSlotB() {
	s.slotB = ""
	s.slotBDims = models.Dimensions{}
	s.consistency = models.ConsistencyUnset
}

// Dimensions returns the locked dimensions, if any.
func (s *State) Dimensions() (models.Dimensions, bool) {
	return s.dims, s.locked
}

// Consistency reports PendingB while dimensions are locked and slot B is
// empty.
func (s *State) Consistency() models.Consistency {
	if s.consistency == models.ConsistencyUnset && s.locked && s.slotB == "" {
		return models.ConsistencyPendingB
	}
	return s.consistency
}

func (s *State) SlotA() string { return s.slotA }

func (s *State) SlotB() string { return s.slotB }

// LastOutput is the path written by the most recent successful Combine.
func (s *State) LastOutput() string { return s.lastOutput }

// Ready reports whether both slots hold images.
func (s *State) Ready() bool {
	return s.slotA != "" && s.slotB != ""
}

func (s *State) Snapshot() models.PairSnapshot {
	snap := models.PairSnapshot{
		SlotA:       s.slotA,
		SlotB:       s.slotB,
		Locked:      s.locked,
		Consistency: s.Consistency(),
		LastOutput:  s.lastOutput,
	}
	if s.locked {
		snap.Width = s.dims.WidthText()
		snap.Height = s.dims.HeightText()
	}
	return snap
}
