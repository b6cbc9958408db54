package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
)

// SQLiteExecutionRepo implements ExecutionRepo using a SQLite database.
// The UNIQUE(user_id, exec_date) constraint is what settles concurrent
// inserts for the same day.
type SQLiteExecutionRepo struct {
	db db.DBTX
}

// NewSQLiteExecutionRepo creates a new SQLiteExecutionRepo.
func NewSQLiteExecutionRepo(conn db.DBTX) *SQLiteExecutionRepo {
	return &SQLiteExecutionRepo{db: conn}
}

// Insert writes e and its items. A second execution for the same date
// fails with ErrDuplicate.
func (r *SQLiteExecutionRepo) Insert(ctx context.Context, userID string, e *domain.ExecutedDay) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO executed_days (id, user_id, exec_date, total_min, recorded_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID(), userID, e.Date().String(), e.Total().Minutes(), formatTime(e.RecordedAt()))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("execution %s: %w", e.Date(), ErrDuplicate)
		}
		return fmt.Errorf("inserting execution: %w", err)
	}

	for i, item := range e.Items() {
		_, err := r.db.ExecContext(ctx, `INSERT INTO executed_items (execution_id, seq, task_id, task_type,
			label, subject_id, review_id, actual_min, completed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID(), i, item.TaskID, string(item.Type), item.Label, item.SubjectID, item.ReviewID,
			item.Actual.Minutes(), boolToInt(item.Completed))
		if err != nil {
			return fmt.Errorf("inserting executed item %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteExecutionRepo) GetByDate(ctx context.Context, userID string, date domain.CalendarDate) (*domain.ExecutedDay, error) {
	var id, recordedAt string
	err := r.db.QueryRowContext(ctx, `SELECT id, recorded_at FROM executed_days WHERE user_id = ? AND exec_date = ?`,
		userID, date.String()).Scan(&id, &recordedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("execution %s: %w", date, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning execution: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT task_id, task_type, label, subject_id, review_id, actual_min, completed
		FROM executed_items WHERE execution_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("querying executed items: %w", err)
	}
	defer rows.Close()

	var items []domain.ExecutedItem
	for rows.Next() {
		var item domain.ExecutedItem
		var taskType string
		var minutes, completed int
		if err := rows.Scan(&item.TaskID, &taskType, &item.Label, &item.SubjectID, &item.ReviewID,
			&minutes, &completed); err != nil {
			return nil, fmt.Errorf("scanning executed item: %w", err)
		}
		item.Type = domain.TaskType(taskType)
		item.Completed = intToBool(completed)
		if item.Actual, err = durationColumn("actual_min", minutes); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	day, err := domain.NewExecutedDay(id, date, items, parseTime(recordedAt))
	if err != nil {
		return nil, fmt.Errorf("loading execution %s: %w", date, err)
	}
	return day, nil
}

func (r *SQLiteExecutionRepo) Exists(ctx context.Context, userID string, date domain.CalendarDate) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM executed_days WHERE user_id = ? AND exec_date = ?`,
		userID, date.String()).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking execution %s: %w", date, err)
	}
	return n > 0, nil
}

func (r *SQLiteExecutionRepo) ListDatesInRange(ctx context.Context, userID string, rng domain.DateRange) ([]domain.CalendarDate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT exec_date FROM executed_days
		WHERE user_id = ? AND exec_date BETWEEN ? AND ? ORDER BY exec_date`,
		userID, rng.From.String(), rng.To.String())
	if err != nil {
		return nil, fmt.Errorf("querying execution dates: %w", err)
	}
	defer rows.Close()

	var out []domain.CalendarDate
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning execution date: %w", err)
		}
		d, err := parseDateColumn("exec_date", s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
