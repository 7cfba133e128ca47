package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/amit-sw/ChatAuthenticated/internal/domain"
)

// RowQuerier is the one slice of pgxpool.Pool the role lookup needs.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRoleRepo looks up authorized_users directly in Postgres. Supabase
// projects expose the same database the REST API fronts, so deployments that
// set DATABASE_URL can skip the PostgREST hop.
type PostgresRoleRepo struct {
	db RowQuerier
}

var _ RoleStore = (*PostgresRoleRepo)(nil)

// NewPostgresRoleRepo constructs the pgx-backed role store.
func NewPostgresRoleRepo(db RowQuerier) *PostgresRoleRepo {
	return &PostgresRoleRepo{db: db}
}

func (r *PostgresRoleRepo) Lookup(ctx context.Context, email string) (*domain.AuthorizedUser, error) {
	var record domain.AuthorizedUser
	err := r.db.QueryRow(ctx,
		`SELECT email, COALESCE(role, '') FROM authorized_users WHERE email = $1`,
		email,
	).Scan(&record.Email, &record.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query authorized_users: %w", err)
	}
	return &record, nil
}
