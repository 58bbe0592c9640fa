package models

import (
	"fmt"
	"strconv"
	"time"
)

// Dimensions is a positive width/height pair in pixels.
type Dimensions struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// WidthText and HeightText are the strings a UI puts in its dimension fields.
func (d Dimensions) WidthText() string  { return strconv.Itoa(d.Width) }
func (d Dimensions) HeightText() string { return strconv.Itoa(d.Height) }

// Consistency records whether slot B agrees with the locked height.
type Consistency int

const (
	ConsistencyUnset Consistency = iota
	ConsistencyPendingB
	ConsistencyMatched
	ConsistencyMismatched
)

func (c Consistency) String() string {
	switch c {
	case ConsistencyPendingB:
		return "pending_b"
	case ConsistencyMatched:
		return "matched"
	case ConsistencyMismatched:
		return "mismatched"
	default:
		return "unset"
	}
}

func (c Consistency) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Consistency) UnmarshalText(text []byte) error {
	for _, candidate := range []Consistency{ConsistencyUnset, ConsistencyPendingB, ConsistencyMatched, ConsistencyMismatched} {
		if candidate.String() == string(text) {
			*c = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown consistency %q", text)
}

// PairSnapshot is a read-only view of a pair session
type PairSnapshot struct {
	ID          string      `json:"id,omitempty" yaml:"id,omitempty"`
	SlotA       string      `json:"slot_a,omitempty" yaml:"slot_a,omitempty"`
	SlotB       string      `json:"slot_b,omitempty" yaml:"slot_b,omitempty"`
	Width       string      `json:"width,omitempty" yaml:"width,omitempty"`
	Height      string      `json:"height,omitempty" yaml:"height,omitempty"`
	Locked      bool        `json:"locked" yaml:"locked"`
	Consistency Consistency `json:"consistency" yaml:"consistency"`
	LastOutput  string      `json:"last_output,omitempty" yaml:"last_output,omitempty"`
	CreatedAt   time.Time   `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}
