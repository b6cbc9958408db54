package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
)

// SQLiteSubjectRepo implements SubjectRepo using a SQLite database.
type SQLiteSubjectRepo struct {
	db db.DBTX
}

// NewSQLiteSubjectRepo creates a new SQLiteSubjectRepo.
func NewSQLiteSubjectRepo(conn db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: conn}
}

const subjectColumns = `id, name, position, remaining_theory_min, active, created_at, updated_at`

func (r *SQLiteSubjectRepo) Create(ctx context.Context, userID string, s *domain.Subject) error {
	query := `INSERT INTO subjects (id, user_id, name, position, remaining_theory_min, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		userID,
		s.Name,
		s.Position,
		s.RemainingTheoryMin,
		boolToInt(s.Active),
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("subject %q: %w", s.Name, ErrDuplicate)
		}
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, userID, id string) (*domain.Subject, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE user_id = ? AND id = ?`, userID, id)
	s, err := scanSubject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subject %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}
	return s, nil
}

func (r *SQLiteSubjectRepo) GetByName(ctx context.Context, userID, name string) (*domain.Subject, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE user_id = ? AND name = ?`, userID, name)
	s, err := scanSubject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subject %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}
	return s, nil
}

func (r *SQLiteSubjectRepo) List(ctx context.Context, userID string, includeInactive bool) ([]domain.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE user_id = ?`
	if !includeInactive {
		query += ` AND active = 1`
	}
	query += ` ORDER BY position, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying subjects: %w", err)
	}
	defer rows.Close()

	var out []domain.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subject: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SQLiteSubjectRepo) Update(ctx context.Context, userID string, s *domain.Subject) error {
	query := `UPDATE subjects SET name = ?, position = ?, remaining_theory_min = ?, active = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.Position,
		s.RemainingTheoryMin,
		boolToInt(s.Active),
		formatTime(s.UpdatedAt),
		userID,
		s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("subject %q: %w", s.Name, ErrDuplicate)
		}
		return fmt.Errorf("updating subject: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("subject %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSubjectRepo) NextPosition(ctx context.Context, userID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM subjects WHERE user_id = ?`, userID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("reading next subject position: %w", err)
	}
	return next, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (*domain.Subject, error) {
	var s domain.Subject
	var active int
	var createdAt, updatedAt string
	if err := row.Scan(&s.ID, &s.Name, &s.Position, &s.RemainingTheoryMin, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	s.Active = intToBool(active)
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(updatedAt)
	return &s, nil
}
