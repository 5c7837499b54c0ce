// Package roles provides lookup of the fixed role records users are
// assigned to.
package roles

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nananom-farms/backend/internal/platform/httpx"
)

// Role represents a permission grouping referenced by user accounts and
// embedded by name into issued tokens.
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Repository defines role lookups.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByID fetches a role by UUID.
func (r *PGRepository) FindByID(ctx context.Context, id string) (*Role, error) {
	return r.scanOne(ctx, `SELECT id, name, created_at FROM roles WHERE id = $1`, id)
}

// FindByName fetches a role by its exact name.
func (r *PGRepository) FindByName(ctx context.Context, name string) (*Role, error) {
	return r.scanOne(ctx, `SELECT id, name, created_at FROM roles WHERE name = $1`, name)
}

func (r *PGRepository) scanOne(ctx context.Context, query string, arg any) (*Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, query, arg).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

var _ Repository = (*PGRepository)(nil)
