package cli

import (
	"github.com/google/uuid"
)

// IDGenerator produces plan identifiers.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 plan IDs.
//
// UUIDv7 embeds a timestamp in the most significant bits, so plan IDs sort
// by creation time when collected from many runs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
