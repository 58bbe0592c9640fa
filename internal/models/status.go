package models

import "github.com/lehigh-university-libraries/imagepair/internal/failure"

// Severity tells a UI how to colour a status message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Status is the message shown to the user after every operation.
type Status struct {
	Message  string       `json:"message" yaml:"message"`
	Severity Severity     `json:"severity" yaml:"severity"`
	Kind     failure.Kind `json:"kind,omitempty" yaml:"kind,omitempty"`
}

func Success(message string) Status {
	return Status{Message: message, Severity: SeveritySuccess}
}

func Info(message string) Status {
	return Status{Message: message, Severity: SeverityInfo}
}

// StatusFromError renders err as an error status.
func StatusFromError(err error) Status {
	return Status{
		Message:  "Error: " + err.Error(),
		Severity: SeverityError,
		Kind:     failure.KindOf(err),
	}
}

// IsError reports whether the status should be rendered as a failure.
func (s Status) IsError() bool {
	return s.Severity == SeverityError
}
