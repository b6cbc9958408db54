package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/google/uuid"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context, userID string) (*domain.StudyProfile, error) {
	query := `SELECT user_id, subjects_per_day, questions_min, informatives_min, lei_seca_min,
		auto_review_enabled, review_frequency_days, review_duration_min,
		reserve_time_block, reserved_min, revision, created_at, updated_at
		FROM study_profiles WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var (
		p                    domain.StudyProfile
		autoReview, reserve  int
		createdAt, updatedAt string
	)
	err := row.Scan(
		&p.UserID,
		&p.SubjectsPerDay,
		&p.Extras.QuestionsMin,
		&p.Extras.InformativesMin,
		&p.Extras.LeiSecaMin,
		&autoReview,
		&p.AutoReview.FrequencyDays,
		&p.AutoReview.DurationMin,
		&reserve,
		&p.AutoReview.ReservedMin,
		&p.Revision,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("study profile %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning study profile: %w", err)
	}
	p.AutoReview.Enabled = intToBool(autoReview)
	p.AutoReview.ReserveTimeBlock = intToBool(reserve)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)

	rules, err := r.listRules(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.WeekdayRules = rules

	periods, err := r.listRestPeriods(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.RestPeriods = periods

	return &p, nil
}

func (r *SQLiteProfileRepo) listRules(ctx context.Context, userID string) (map[int]domain.WeekdayRule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT weekday, daily_min, questions_enabled, informatives_enabled,
		lei_seca_enabled, theory_enabled FROM weekday_rules WHERE user_id = ? ORDER BY weekday`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying weekday rules: %w", err)
	}
	defer rows.Close()

	rules := make(map[int]domain.WeekdayRule)
	for rows.Next() {
		var rule domain.WeekdayRule
		var q, inf, lei, theory int
		if err := rows.Scan(&rule.Weekday, &rule.DailyMin, &q, &inf, &lei, &theory); err != nil {
			return nil, fmt.Errorf("scanning weekday rule: %w", err)
		}
		rule.QuestionsEnabled = intToBool(q)
		rule.InformativesEnabled = intToBool(inf)
		rule.LeiSecaEnabled = intToBool(lei)
		rule.TheoryEnabled = intToBool(theory)
		rules[rule.Weekday] = rule
	}
	return rules, rows.Err()
}

func (r *SQLiteProfileRepo) listRestPeriods(ctx context.Context, userID string) ([]domain.RestPeriod, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, from_date, to_date, label
		FROM rest_periods WHERE user_id = ? ORDER BY from_date, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying rest periods: %w", err)
	}
	defer rows.Close()

	var periods []domain.RestPeriod
	for rows.Next() {
		var rp domain.RestPeriod
		var from, to string
		if err := rows.Scan(&rp.ID, &from, &to, &rp.Label); err != nil {
			return nil, fmt.Errorf("scanning rest period: %w", err)
		}
		if rp.Range.From, err = parseDateColumn("from_date", from); err != nil {
			return nil, err
		}
		if rp.Range.To, err = parseDateColumn("to_date", to); err != nil {
			return nil, err
		}
		periods = append(periods, rp)
	}
	return periods, rows.Err()
}

// Save writes the profile as a whole. Weekday rules and rest periods are
// replaced, never merged. The stored revision is one past the previous one,
// and p is updated to match.
func (r *SQLiteProfileRepo) Save(ctx context.Context, p *domain.StudyProfile) error {
	now := time.Now().UTC()

	var revision int
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT revision, created_at FROM study_profiles WHERE user_id = ?`, p.UserID).
		Scan(&revision, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		revision = 0
		createdAt = formatTime(now)
	case err != nil:
		return fmt.Errorf("reading profile revision: %w", err)
	}

	query := `INSERT INTO study_profiles (user_id, subjects_per_day, questions_min, informatives_min,
		lei_seca_min, auto_review_enabled, review_frequency_days, review_duration_min,
		reserve_time_block, reserved_min, revision, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			subjects_per_day = excluded.subjects_per_day,
			questions_min = excluded.questions_min,
			informatives_min = excluded.informatives_min,
			lei_seca_min = excluded.lei_seca_min,
			auto_review_enabled = excluded.auto_review_enabled,
			review_frequency_days = excluded.review_frequency_days,
			review_duration_min = excluded.review_duration_min,
			reserve_time_block = excluded.reserve_time_block,
			reserved_min = excluded.reserved_min,
			revision = excluded.revision,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		p.UserID,
		p.SubjectsPerDay,
		p.Extras.QuestionsMin,
		p.Extras.InformativesMin,
		p.Extras.LeiSecaMin,
		boolToInt(p.AutoReview.Enabled),
		p.AutoReview.FrequencyDays,
		p.AutoReview.DurationMin,
		boolToInt(p.AutoReview.ReserveTimeBlock),
		p.AutoReview.ReservedMin,
		revision+1,
		createdAt,
		formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("upserting study profile: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM weekday_rules WHERE user_id = ?`, p.UserID); err != nil {
		return fmt.Errorf("clearing weekday rules: %w", err)
	}
	weekdays := make([]int, 0, len(p.WeekdayRules))
	for wd := range p.WeekdayRules {
		weekdays = append(weekdays, wd)
	}
	sort.Ints(weekdays)
	for _, wd := range weekdays {
		rule := p.WeekdayRules[wd]
		_, err := r.db.ExecContext(ctx, `INSERT INTO weekday_rules (user_id, weekday, daily_min,
			questions_enabled, informatives_enabled, lei_seca_enabled, theory_enabled)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.UserID, wd, rule.DailyMin,
			boolToInt(rule.QuestionsEnabled), boolToInt(rule.InformativesEnabled),
			boolToInt(rule.LeiSecaEnabled), boolToInt(rule.TheoryEnabled))
		if err != nil {
			return fmt.Errorf("inserting weekday rule %d: %w", wd, err)
		}
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM rest_periods WHERE user_id = ?`, p.UserID); err != nil {
		return fmt.Errorf("clearing rest periods: %w", err)
	}
	for i := range p.RestPeriods {
		rp := &p.RestPeriods[i]
		if rp.ID == "" {
			rp.ID = uuid.New().String()
		}
		_, err := r.db.ExecContext(ctx, `INSERT INTO rest_periods (id, user_id, from_date, to_date, label)
			VALUES (?, ?, ?, ?, ?)`,
			rp.ID, p.UserID, rp.Range.From.String(), rp.Range.To.String(), rp.Label)
		if err != nil {
			return fmt.Errorf("inserting rest period %s: %w", rp.ID, err)
		}
	}

	p.Revision = revision + 1
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = now
	return nil
}
