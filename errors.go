package reel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSegmentIndex is returned by Editor methods given an index outside the
// segment list.
var ErrSegmentIndex = errors.New("reel: segment index out of range")

// FieldError is a single violated field in a document or mutation.
type FieldError struct {
	Path string // e.g. "segments[2].shapeInstances.epicycloids[0].samples"
	Msg  string
}

func (f FieldError) String() string {
	return f.Path + ": " + f.Msg
}

// ValidationError lists every field that failed validation. It is never
// returned with an empty Fields slice.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return "reel: invalid document: " + e.Fields[0].String()
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("reel: invalid document (%d fields): %s", len(e.Fields), strings.Join(parts, "; "))
}

// Has reports whether path is among the violated fields.
func (e *ValidationError) Has(path string) bool {
	for _, f := range e.Fields {
		if f.Path == path {
			return true
		}
	}
	return false
}

// LimitExceededError is returned when a shape mutation would put more
// instances of one type into a segment than the project's ShapeLimits allow.
type LimitExceededError struct {
	Type  ShapeType
	Count int
	Limit int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("reel: %d %s exceed the limit of %d", e.Count, e.Type.Plural(), e.Limit)
}

// MigrationError is returned when a raw document is too malformed to
// interpret at all.
type MigrationError struct {
	Path string
	Msg  string
}

func (e *MigrationError) Error() string {
	if e.Path == "" {
		return "reel: cannot migrate document: " + e.Msg
	}
	return fmt.Sprintf("reel: cannot migrate document: %s: %s", e.Path, e.Msg)
}
