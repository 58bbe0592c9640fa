// Package report renders the outcome of a command-line combine run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/imagepair/internal/models"
)

// Step is one pairing operation and the status it produced.
type Step struct {
	Operation  string             `json:"operation" yaml:"operation"`
	Path       string             `json:"path,omitempty" yaml:"path,omitempty"`
	Dimensions *models.Dimensions `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Status     models.Status      `json:"status" yaml:"status"`
}

// Run is the full record of a combine invocation.
type Run struct {
	Steps  []Step              `json:"steps" yaml:"steps"`
	Output string              `json:"output,omitempty" yaml:"output,omitempty"`
	Pair   models.PairSnapshot `json:"pair" yaml:"pair"`
}

// Add appends a step.
func (r *Run) Add(step Step) {
	r.Steps = append(r.Steps, step)
}

// Failed reports whether any step ended in an error status.
func (r *Run) Failed() bool {
	for _, s := range r.Steps {
		if s.Status.IsError() {
			return true
		}
	}
	return false
}

var Formats = []string{"text", "json", "yaml"}

// Write renders r to w in the named format.
func Write(w io.Writer, r *Run, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		return writeText(w, r)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return nil
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(Formats, ", "))
}

func writeText(w io.Writer, r *Run) error {
	for _, s := range r.Steps {
		mark := "✓"
		if s.Status.IsError() {
			mark = "✗"
		}
		if _, err := fmt.Fprintf(w, "%s %-7s %s\n", mark, s.Operation, s.Status.Message); err != nil {
			return err
		}
	}
	return nil
}
