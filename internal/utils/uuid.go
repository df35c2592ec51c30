package utils

import "github.com/google/uuid"

// NewUUID returns a time-ordered UUIDv7 string, falling back to a random
// UUIDv4 when v7 generation fails. Time-ordered ids keep entry and event
// ids roughly sortable by creation time without reintroducing the collision
// risk of raw wall-clock ids.
func NewUUID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
