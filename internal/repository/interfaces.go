package repository

import (
	"context"

	"github.com/amit-sw/ChatAuthenticated/internal/domain"
)

// SessionStore holds per-browser sessions keyed by the opaque session ID
// from the session cookie. A missing session reads as (nil, nil).
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Put(ctx context.Context, sessionID string, session domain.Session) error
	Delete(ctx context.Context, sessionID string) error
}

// RoleStore resolves the authorized_users row for an email. A missing row
// reads as (nil, nil); only connectivity failures return an error.
type RoleStore interface {
	Lookup(ctx context.Context, email string) (*domain.AuthorizedUser, error)
}
