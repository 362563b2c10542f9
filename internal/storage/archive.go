package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"paytrack/internal/core"

	_ "modernc.org/sqlite"
)

// ArchiveRepository appends payment change events to a SQLite database. The
// archive is written by the worker only; the serving path never reads it.
type ArchiveRepository struct {
	db *sql.DB
}

// EventRecord is one archived payment change.
type EventRecord struct {
	ID         int64
	Kind       string
	Payment    core.Payment
	OccurredAt time.Time
}

func NewArchiveRepository(dbPath string) (*ArchiveRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &ArchiveRepository{db: db}, nil
}

func (r *ArchiveRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// RecordEvent appends one event row. Dates are stored as ISO-8601 strings,
// matching the wire and file formats.
func (r *ArchiveRepository) RecordEvent(ctx context.Context, kind string, p core.Payment, occurredAt time.Time) (int64, error) {
	var dueDate sql.NullString
	if p.DueDate != nil && !p.DueDate.IsZero() {
		dueDate = sql.NullString{String: p.DueDate.UTC().Format(time.RFC3339), Valid: true}
	}
	var date sql.NullString
	if !p.Date.IsZero() {
		date = sql.NullString{String: p.Date.UTC().Format(time.RFC3339), Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_events
			(kind, payment_id, profile_id, amount, category, description, paid, date, due_date, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		kind, p.ID, p.ProfileID, p.Amount, string(p.Category), p.Description,
		p.IsPaid, date, dueDate, occurredAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert payment event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Payment event archived",
		"event_id", id,
		"kind", kind,
		"payment_id", p.ID,
		"amount", p.Amount)
	return id, nil
}

// CountEvents returns the total number of archived events.
func (r *ArchiveRepository) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payment_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count payment events: %w", err)
	}
	return n, nil
}

// EventsForPayment returns the archived history of one payment, oldest
// first.
func (r *ArchiveRepository) EventsForPayment(ctx context.Context, paymentID string) ([]EventRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, payment_id, profile_id, amount, category, description, paid, date, due_date, occurred_at
		FROM payment_events
		WHERE payment_id = ?
		ORDER BY id`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("query payment events: %w", err)
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var (
			rec        EventRecord
			date       sql.NullString
			dueDate    sql.NullString
			occurredAt string
			category   string
		)
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Payment.ID, &rec.Payment.ProfileID,
			&rec.Payment.Amount, &category, &rec.Payment.Description, &rec.Payment.IsPaid,
			&date, &dueDate, &occurredAt); err != nil {
			return nil, fmt.Errorf("scan payment event: %w", err)
		}
		rec.Payment.Category = core.Category(category)
		if date.Valid {
			if t, err := time.Parse(time.RFC3339, date.String); err == nil {
				rec.Payment.Date = core.Date{Time: t}
			}
		}
		if dueDate.Valid {
			if t, err := time.Parse(time.RFC3339, dueDate.String); err == nil {
				d := core.Date{Time: t}
				rec.Payment.DueDate = &d
			}
		}
		if t, err := time.Parse(time.RFC3339, occurredAt); err == nil {
			rec.OccurredAt = t
		}
		events = append(events, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment events: %w", err)
	}
	return events, nil
}
