// Package admin implements the administration panel endpoints.
package admin

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Stats aggregates the dashboard counters.
type Stats struct {
	TotalUsers          int64 `json:"total_users"`
	PendingAppointments int64 `json:"pending_appointments"`
	NewEnquiries        int64 `json:"new_enquiries"`
	ActiveServices      int64 `json:"active_services"`
}

// StatsRepository reads aggregate counts for the dashboard.
type StatsRepository interface {
	Collect(ctx context.Context) (Stats, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository constructs a PostgreSQL stats repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) Collect(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM appointments WHERE status = 'Pending'),
			(SELECT count(*) FROM enquiries WHERE status = 'New'),
			(SELECT count(*) FROM services WHERE is_active)`,
	).Scan(&s.TotalUsers, &s.PendingAppointments, &s.NewEnquiries, &s.ActiveServices)
	return s, err
}
