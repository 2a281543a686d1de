package revocation

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound means the session id has no live entry: the session was
// revoked, already rotated away, or its TTL expired. Store implementations
// must return it only for a confirmed miss, never for an I/O failure.
var ErrNotFound = errors.New("revocation entry not found")

// Store is the live/dead oracle for refresh sessions. One entry exists per
// live session id, holding the owning user id, with a TTL equal to the
// refresh token's validity window.
//
// CheckAndDelete must be atomic: of N concurrent calls for the same session
// id, exactly one observes the entry and the rest get ErrNotFound. This is
// what makes refresh rotation exactly-once.
type Store interface {
	Get(ctx context.Context, sessionID string) (string, error)
	SetWithTTL(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
	CheckAndDelete(ctx context.Context, sessionID string) (string, error)
}
