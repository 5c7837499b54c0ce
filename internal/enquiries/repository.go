package enquiries

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nananom-farms/backend/internal/platform/httpx"
)

// Repository defines persistence operations for enquiries.
type Repository interface {
	List(ctx context.Context) ([]Enquiry, error)
	ListByUser(ctx context.Context, userID string) ([]Enquiry, error)
	Get(ctx context.Context, id string) (*Enquiry, error)
	Create(ctx context.Context, e *Enquiry) error
	Update(ctx context.Context, e *Enquiry) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const enquiryColumns = `id, user_id, name, email, phone_number, subject, message, status, created_at, updated_at`

func scanEnquiry(row pgx.Row) (*Enquiry, error) {
	var e Enquiry
	err := row.Scan(
		&e.ID, &e.UserID, &e.Name, &e.Email, &e.PhoneNumber,
		&e.Subject, &e.Message, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func collect(rows pgx.Rows) ([]Enquiry, error) {
	defer rows.Close()
	var out []Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *repository) List(ctx context.Context) ([]Enquiry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+enquiryColumns+` FROM enquiries ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Enquiry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+enquiryColumns+` FROM enquiries WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *repository) Get(ctx context.Context, id string) (*Enquiry, error) {
	return scanEnquiry(r.pool.QueryRow(ctx, `SELECT `+enquiryColumns+` FROM enquiries WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, e *Enquiry) error {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	_, err := r.pool.Exec(ctx,
		`INSERT INTO enquiries (id, user_id, name, email, phone_number, subject, message, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.UserID, e.Name, e.Email, e.PhoneNumber, e.Subject, e.Message, e.Status, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r *repository) Update(ctx context.Context, e *Enquiry) error {
	e.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE enquiries
		 SET name = $2, email = $3, phone_number = $4, subject = $5, message = $6, status = $7, updated_at = $8
		 WHERE id = $1`,
		e.ID, e.Name, e.Email, e.PhoneNumber, e.Subject, e.Message, e.Status, e.UpdatedAt,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
