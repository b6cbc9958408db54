package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
)

// SQLiteReviewLedgerRepo implements ReviewLedgerRepo using a SQLite database.
// Status changes are conditional updates on status = 'SCHEDULED', so a
// terminal entry can never be moved again.
type SQLiteReviewLedgerRepo struct {
	db db.DBTX
}

// NewSQLiteReviewLedgerRepo creates a new SQLiteReviewLedgerRepo.
func NewSQLiteReviewLedgerRepo(conn db.DBTX) *SQLiteReviewLedgerRepo {
	return &SQLiteReviewLedgerRepo{db: conn}
}

const reviewColumns = `id, subject_id, subject_name, origin_date, scheduled_date, duration_min,
	status, executed_on, created_at, updated_at`

func (r *SQLiteReviewLedgerRepo) ListInRange(ctx context.Context, userID string, rng domain.DateRange) ([]*domain.ReviewEntry, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM review_ledger
		WHERE user_id = ? AND scheduled_date BETWEEN ? AND ?
		ORDER BY scheduled_date, origin_date, id`,
		userID, rng.From.String(), rng.To.String())
}

func (r *SQLiteReviewLedgerRepo) ListScheduledBefore(ctx context.Context, userID string, date domain.CalendarDate) ([]*domain.ReviewEntry, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM review_ledger
		WHERE user_id = ? AND status = 'SCHEDULED' AND scheduled_date < ?
		ORDER BY scheduled_date, origin_date, id`,
		userID, date.String())
}

func (r *SQLiteReviewLedgerRepo) GetByID(ctx context.Context, userID, id string) (*domain.ReviewEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reviewColumns+` FROM review_ledger
		WHERE user_id = ? AND id = ?`, userID, id)
	e, err := scanReview(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("review %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning review: %w", err)
	}
	return e, nil
}

func (r *SQLiteReviewLedgerRepo) UpsertScheduled(ctx context.Context, userID string, e *domain.ReviewEntry) (bool, error) {
	if e.Status != domain.ReviewScheduled {
		return false, fmt.Errorf("review %s: only SCHEDULED entries can be created, got %s", e.ID, e.Status)
	}
	query := `INSERT INTO review_ledger (id, user_id, subject_id, subject_name, origin_date,
		scheduled_date, duration_min, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'SCHEDULED', ?, ?)
		ON CONFLICT(user_id, subject_id, origin_date) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query,
		e.ID,
		userID,
		e.SubjectID,
		e.SubjectName,
		e.OriginDate.String(),
		e.ScheduledDate.String(),
		e.Duration.Minutes(),
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("review %s: %w", e.ID, ErrDuplicate)
		}
		return false, fmt.Errorf("inserting review: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}
	return n == 1, nil
}

func (r *SQLiteReviewLedgerRepo) MarkExecuted(ctx context.Context, userID, id string, on domain.CalendarDate, now time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE review_ledger SET status = 'EXECUTED', executed_on = ?, updated_at = ?
		WHERE user_id = ? AND id = ? AND status = 'SCHEDULED' AND scheduled_date = ?`,
		on.String(), formatTime(now), userID, id, on.String())
	if err != nil {
		return fmt.Errorf("marking review executed: %w", err)
	}
	return requireOneRow(res, "scheduled review "+id+" on "+on.String())
}

func (r *SQLiteReviewLedgerRepo) MarkMissed(ctx context.Context, userID, id string, now time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE review_ledger SET status = 'MISSED', updated_at = ?
		WHERE user_id = ? AND id = ? AND status = 'SCHEDULED'`,
		formatTime(now), userID, id)
	if err != nil {
		return fmt.Errorf("marking review missed: %w", err)
	}
	return requireOneRow(res, "scheduled review "+id)
}

func (r *SQLiteReviewLedgerRepo) list(ctx context.Context, query string, args ...any) ([]*domain.ReviewEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying review ledger: %w", err)
	}
	defer rows.Close()

	var out []*domain.ReviewEntry
	for rows.Next() {
		e, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanReview(row rowScanner) (*domain.ReviewEntry, error) {
	var (
		e                    domain.ReviewEntry
		origin, scheduled    string
		minutes              int
		status               string
		executedOn           sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&e.ID, &e.SubjectID, &e.SubjectName, &origin, &scheduled, &minutes,
		&status, &executedOn, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if e.OriginDate, err = parseDateColumn("origin_date", origin); err != nil {
		return nil, err
	}
	if e.ScheduledDate, err = parseDateColumn("scheduled_date", scheduled); err != nil {
		return nil, err
	}
	if e.ExecutedOn, err = parseNullableDate("executed_on", executedOn); err != nil {
		return nil, err
	}
	if e.Duration, err = durationColumn("duration_min", minutes); err != nil {
		return nil, err
	}
	e.Status = domain.ReviewStatus(status)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

func requireOneRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
