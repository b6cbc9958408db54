package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS study_profiles (
		user_id               TEXT PRIMARY KEY,
		subjects_per_day      INTEGER NOT NULL DEFAULT 1 CHECK(subjects_per_day >= 1),
		questions_min         INTEGER NOT NULL DEFAULT 0 CHECK(questions_min BETWEEN 0 AND 1440),
		informatives_min      INTEGER NOT NULL DEFAULT 0 CHECK(informatives_min BETWEEN 0 AND 1440),
		lei_seca_min          INTEGER NOT NULL DEFAULT 0 CHECK(lei_seca_min BETWEEN 0 AND 1440),
		auto_review_enabled   INTEGER NOT NULL DEFAULT 0,
		review_frequency_days INTEGER NOT NULL DEFAULT 0,
		review_duration_min   INTEGER NOT NULL DEFAULT 0,
		reserve_time_block    INTEGER NOT NULL DEFAULT 0,
		reserved_min          INTEGER NOT NULL DEFAULT 0,
		revision              INTEGER NOT NULL DEFAULT 1,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS weekday_rules (
		user_id              TEXT NOT NULL REFERENCES study_profiles(user_id) ON DELETE CASCADE,
		weekday              INTEGER NOT NULL CHECK(weekday BETWEEN 1 AND 7),
		daily_min            INTEGER NOT NULL CHECK(daily_min BETWEEN 0 AND 1440),
		questions_enabled    INTEGER NOT NULL DEFAULT 0,
		informatives_enabled INTEGER NOT NULL DEFAULT 0,
		lei_seca_enabled     INTEGER NOT NULL DEFAULT 0,
		theory_enabled       INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, weekday)
	)`,

	`CREATE TABLE IF NOT EXISTS rest_periods (
		id        TEXT PRIMARY KEY,
		user_id   TEXT NOT NULL REFERENCES study_profiles(user_id) ON DELETE CASCADE,
		from_date TEXT NOT NULL,
		to_date   TEXT NOT NULL,
		label     TEXT NOT NULL DEFAULT '',
		CHECK(from_date <= to_date)
	)`,

	`CREATE TABLE IF NOT EXISTS subjects (
		id                   TEXT PRIMARY KEY,
		user_id              TEXT NOT NULL,
		name                 TEXT NOT NULL,
		remaining_theory_min INTEGER NOT NULL DEFAULT 0 CHECK(remaining_theory_min >= 0),
		active               INTEGER NOT NULL DEFAULT 1,
		position             INTEGER NOT NULL DEFAULT 0,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL,
		UNIQUE(user_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS review_ledger (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		subject_id     TEXT NOT NULL,
		subject_name   TEXT NOT NULL DEFAULT '',
		origin_date    TEXT NOT NULL,
		scheduled_date TEXT NOT NULL,
		duration_min   INTEGER NOT NULL CHECK(duration_min BETWEEN 0 AND 1440),
		status         TEXT NOT NULL DEFAULT 'SCHEDULED'
		               CHECK(status IN ('SCHEDULED','EXECUTED','MISSED')),
		executed_on    TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		UNIQUE(user_id, subject_id, origin_date),
		CHECK(scheduled_date > origin_date)
	)`,

	`CREATE TABLE IF NOT EXISTS daily_plans (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		plan_date     TEXT NOT NULL,
		status        TEXT NOT NULL CHECK(status IN ('PLANNED','REST_DAY','EXECUTED')),
		available_min INTEGER NOT NULL CHECK(available_min BETWEEN 0 AND 1440),
		required_min  INTEGER NOT NULL CHECK(required_min BETWEEN 0 AND 1440),
		reserved_min  INTEGER NOT NULL DEFAULT 0 CHECK(reserved_min BETWEEN 0 AND 1440),
		snapshot_id   TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		UNIQUE(user_id, plan_date),
		CHECK(required_min + reserved_min <= available_min)
	)`,

	`CREATE TABLE IF NOT EXISTS daily_plan_items (
		plan_id      TEXT NOT NULL REFERENCES daily_plans(id) ON DELETE CASCADE,
		task_id      TEXT NOT NULL,
		task_type    TEXT NOT NULL
		             CHECK(task_type IN ('THEORY','REVIEW','QUESTIONS','INFORMATIVES','LEI_SECA')),
		layer        TEXT NOT NULL CHECK(layer IN ('REVIEW','EXTRAS','THEORY')),
		item_order   INTEGER NOT NULL DEFAULT 0,
		duration_min INTEGER NOT NULL CHECK(duration_min BETWEEN 0 AND 1440),
		label        TEXT NOT NULL DEFAULT '',
		subject_id   TEXT NOT NULL DEFAULT '',
		review_id    TEXT,
		origin_date  TEXT,
		due_date     TEXT,
		PRIMARY KEY (plan_id, task_id)
	)`,

	`CREATE TABLE IF NOT EXISTS executed_days (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		exec_date   TEXT NOT NULL,
		total_min   INTEGER NOT NULL CHECK(total_min BETWEEN 0 AND 1440),
		recorded_at TEXT NOT NULL,
		UNIQUE(user_id, exec_date)
	)`,

	`CREATE TABLE IF NOT EXISTS executed_items (
		execution_id TEXT NOT NULL REFERENCES executed_days(id) ON DELETE CASCADE,
		seq          INTEGER NOT NULL,
		task_id      TEXT NOT NULL DEFAULT '',
		task_type    TEXT NOT NULL
		             CHECK(task_type IN ('THEORY','REVIEW','QUESTIONS','INFORMATIVES','LEI_SECA')),
		label        TEXT NOT NULL DEFAULT '',
		subject_id   TEXT NOT NULL DEFAULT '',
		review_id    TEXT NOT NULL DEFAULT '',
		actual_min   INTEGER NOT NULL CHECK(actual_min BETWEEN 0 AND 1440),
		completed    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (execution_id, seq)
	)`,

	// Indexes
	`CREATE INDEX IF NOT EXISTS idx_subjects_user ON subjects(user_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_review_ledger_scheduled ON review_ledger(user_id, scheduled_date)`,
	`CREATE INDEX IF NOT EXISTS idx_review_ledger_status ON review_ledger(user_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_plans_date ON daily_plans(user_id, plan_date)`,
	`CREATE INDEX IF NOT EXISTS idx_executed_days_date ON executed_days(user_id, exec_date)`,
}
