// Package sessions maps bearer tokens to authenticated principals,
// with in-memory and Postgres backings.
package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Principal identifies an authenticated account.
type Principal struct {
	Email   string
	Created time.Time
}

// Store is the token registry contract. The memory store backs tests
// and single-node deployments; the Postgres store survives restarts.
type Store interface {
	Put(ctx context.Context, token string, p Principal) error
	Get(ctx context.Context, token string) (Principal, bool, error)
	Delete(ctx context.Context, token string) error
}

// NewToken returns a fresh session token from a cryptographically
// secure source.
func NewToken() string {
	return uuid.NewString()
}
