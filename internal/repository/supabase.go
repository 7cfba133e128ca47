package repository

import (
	"context"

	"github.com/amit-sw/ChatAuthenticated/internal/adapter/supabase"
	"github.com/amit-sw/ChatAuthenticated/internal/domain"
)

// SupabaseRoleRepo resolves roles through the PostgREST table API using the
// anon key. This is the default; it needs no database credentials.
type SupabaseRoleRepo struct {
	client *supabase.Client
}

var _ RoleStore = (*SupabaseRoleRepo)(nil)

// NewSupabaseRoleRepo constructs the REST-backed role store.
func NewSupabaseRoleRepo(client *supabase.Client) *SupabaseRoleRepo {
	return &SupabaseRoleRepo{client: client}
}

func (r *SupabaseRoleRepo) Lookup(ctx context.Context, email string) (*domain.AuthorizedUser, error) {
	return r.client.AuthorizedUser(ctx, email)
}
