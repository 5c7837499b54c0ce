package appointments

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nananom-farms/backend/internal/platform/httpx"
)

// Repository defines persistence operations for appointments.
type Repository interface {
	List(ctx context.Context) ([]Detail, error)
	ListByUser(ctx context.Context, userID string) ([]Detail, error)
	Get(ctx context.Context, id string) (*Detail, error)
	Create(ctx context.Context, a *Appointment) error
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const detailQuery = `
SELECT a.id, a.user_id, a.service_id, a.appointment_date, a.appointment_time,
       a.status, a.notes, a.created_at, a.updated_at,
       u.first_name || ' ' || u.last_name AS user_name, u.email,
       s.service_name
FROM appointments a
JOIN users u ON u.id = a.user_id
JOIN services s ON s.id = a.service_id`

func scanDetail(row pgx.Row) (*Detail, error) {
	var d Detail
	err := row.Scan(
		&d.ID, &d.UserID, &d.ServiceID, &d.AppointmentDate, &d.AppointmentTime,
		&d.Status, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
		&d.UserName, &d.UserEmail, &d.ServiceName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) collect(rows pgx.Rows) ([]Detail, error) {
	defer rows.Close()
	var out []Detail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *repository) List(ctx context.Context) ([]Detail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+` ORDER BY a.appointment_date DESC, a.appointment_time DESC`)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Detail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+` WHERE a.user_id = $1 ORDER BY a.appointment_date DESC, a.appointment_time DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *repository) Get(ctx context.Context, id string) (*Detail, error) {
	return scanDetail(r.pool.QueryRow(ctx, detailQuery+` WHERE a.id = $1`, id))
}

func (r *repository) Create(ctx context.Context, a *Appointment) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.pool.Exec(ctx,
		`INSERT INTO appointments (id, user_id, service_id, appointment_date, appointment_time, status, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.UserID, a.ServiceID, a.AppointmentDate, a.AppointmentTime, a.Status, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (r *repository) Update(ctx context.Context, a *Appointment) error {
	a.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointments
		 SET user_id = $2, service_id = $3, appointment_date = $4, appointment_time = $5,
		     status = $6, notes = $7, updated_at = $8
		 WHERE id = $1`,
		a.ID, a.UserID, a.ServiceID, a.AppointmentDate, a.AppointmentTime, a.Status, a.Notes, a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
