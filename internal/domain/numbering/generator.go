package numbering

import (
	"context"
	"time"
)

// MaxAttempts bounds the optimistic retry loop on sequence collisions
const MaxAttempts = 3

// Generator hands out unique document numbers. Implementations must make the
// allocation atomic with respect to the persistence layer; retired numbers are
// never reused.
type Generator interface {
	// Next returns the next unique number for the kind at the given time,
	// retrying up to MaxAttempts on collision before surfacing ID_COLLISION.
	Next(ctx context.Context, kind DocumentKind, at time.Time) (string, error)
}
