package booking

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines booking data access
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	List(ctx context.Context, status *Status) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (int64, error)
}

const selectColumns = `
	SELECT b.id, b.customer_name, b.contact, b.service,
		to_char(b.date, 'YYYY-MM-DD') AS date,
		to_char(b.time, 'HH24:MI') AS time,
		b.status, b.created_at
	FROM bookings b`

// Ties on (date, time) keep insertion order.
const listOrder = ` ORDER BY b.date ASC, b.time ASC, b.id ASC`

type repository struct {
	db *sqlx.DB
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (customer_name, contact, service, date, time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		b.CustomerName,
		b.Contact,
		b.Service,
		b.Date,
		b.Time,
		b.Status,
	)
	if err := row.Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context, status *Status) ([]*Booking, error) {
	query := selectColumns
	args := []interface{}{}
	if status != nil {
		query += ` WHERE b.status = $1`
		args = append(args, *status)
	}
	query += listOrder

	var bookings []*Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus overwrites the status unconditionally and returns the number
// of rows touched (0 when id does not exist).
func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return 0, fmt.Errorf("update booking status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update booking status: %w", err)
	}
	return n, nil
}
