package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
)

// timeLayout is the storage format of every timestamp column.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp. Unparseable values yield the zero time.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseDateColumn parses a stored YYYY-MM-DD column, naming the column on
// failure.
func parseDateColumn(column, s string) (domain.CalendarDate, error) {
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.CalendarDate{}, fmt.Errorf("column %s: %w", column, err)
	}
	return d, nil
}

// parseNullableDate parses a nullable date column. NULL or empty yields the
// zero date.
func parseNullableDate(column string, s sql.NullString) (domain.CalendarDate, error) {
	if !s.Valid || s.String == "" {
		return domain.CalendarDate{}, nil
	}
	return parseDateColumn(column, s.String)
}

// nullableDate converts a date to a value suitable for SQLite storage.
// Returns nil (SQL NULL) for the zero date.
func nullableDate(d domain.CalendarDate) interface{} {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

// nullableString returns nil (SQL NULL) for the empty string.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

func durationColumn(column string, minutes int) (domain.PlannedDuration, error) {
	d, err := domain.NewPlannedDuration(minutes)
	if err != nil {
		return domain.PlannedDuration{}, fmt.Errorf("column %s: %w", column, err)
	}
	return d, nil
}
