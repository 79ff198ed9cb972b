package reel

import "github.com/google/uuid"

// NewID returns a fresh opaque identity for a segment or shape instance.
func NewID() string {
	return uuid.NewString()
}
