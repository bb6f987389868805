// Package recommend turns questionnaire answers into an ordered set of trip
// recommendations by prompting a text-generation service and coercing its reply
// into strict records.
package recommend

import (
	"fmt"
	"strings"
	"time"
)

// Unknown is the sentinel for a field the model could not (or did not) provide.
const Unknown = "unknown"

// Answers is the questionnaire as submitted: each value is a string or a bool.
type Answers map[string]any

// Item is one recommendation row. IDs are unique within a category only.
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Cost        string `json:"cost"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
}

// Set is a successful pipeline result.
//
// Homes lists featured items first; within the featured and non-featured groups
// the model's order is preserved.
type Set struct {
	Homes         []Item `json:"homes"`
	PlacesToVisit []Item `json:"placesToVisit"`
	PlacesToEat   []Item `json:"placesToEat"`
	Advisory      bool   `json:"advisory"`
}

// Kind classifies pipeline failures.
type Kind string

const (
	KindTransport Kind = "transport"
	KindParse     Kind = "parse"
	KindEmpty     Kind = "empty"
)

// User-facing messages per Kind.
const (
	MessageTransport = "Error fetching response from Gemini AI."
	MessageParse     = "Invalid JSON format from AI response."
	MessageEmpty     = "No response received."
)

// Error is the only error type returned by Pipeline.Run.
type Error struct {
	Kind Kind

	// Message is safe to show to end users.
	Message string

	// Detail is a redacted diagnostic hint (e.g. a prefix of the offending text).
	Detail string

	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return "recommend: error"
	}
	parts := []string{fmt.Sprintf("recommend: %s", e.Kind)}
	if strings.TrimSpace(e.Message) != "" {
		parts = append(parts, e.Message)
	}
	if strings.TrimSpace(e.Detail) != "" {
		parts = append(parts, e.Detail)
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind Kind, detail string, err error) *Error {
	msg := MessageTransport
	switch kind {
	case KindParse:
		msg = MessageParse
	case KindEmpty:
		msg = MessageEmpty
	}
	return &Error{Kind: kind, Message: msg, Detail: detail, Err: err}
}

// Result is delivered by Pipeline.Start. Exactly one of Set and Err is set.
type Result struct {
	InvocationID string
	Set          *Set
	Err          *Error
	Duration     time.Duration
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool { return r.Err == nil && r.Set != nil }
