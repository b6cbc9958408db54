package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/google/uuid"
)

// SQLiteDailyPlanRepo implements DailyPlanRepo using a SQLite database.
// Upsert issues several statements; run it inside a UnitOfWork when the
// plan must be replaced atomically.
type SQLiteDailyPlanRepo struct {
	db db.DBTX
}

// NewSQLiteDailyPlanRepo creates a new SQLiteDailyPlanRepo.
func NewSQLiteDailyPlanRepo(conn db.DBTX) *SQLiteDailyPlanRepo {
	return &SQLiteDailyPlanRepo{db: conn}
}

func (r *SQLiteDailyPlanRepo) Upsert(ctx context.Context, userID string, plan *domain.DailyPlan, snapshotID string) error {
	now := formatTime(time.Now())
	query := `INSERT INTO daily_plans (id, user_id, plan_date, status, available_min, required_min,
		reserved_min, snapshot_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, plan_date) DO UPDATE SET
			status = excluded.status,
			available_min = excluded.available_min,
			required_min = excluded.required_min,
			reserved_min = excluded.reserved_min,
			snapshot_id = excluded.snapshot_id,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		userID,
		plan.Date().String(),
		string(plan.Status()),
		plan.Available().Minutes(),
		plan.Required().Minutes(),
		plan.Reserved().Minutes(),
		snapshotID,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting daily plan %s: %w", plan.Date(), err)
	}

	var planID string
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM daily_plans WHERE user_id = ? AND plan_date = ?`,
		userID, plan.Date().String()).Scan(&planID); err != nil {
		return fmt.Errorf("reading daily plan id: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM daily_plan_items WHERE plan_id = ?`, planID); err != nil {
		return fmt.Errorf("clearing plan items: %w", err)
	}
	for _, item := range plan.Items() {
		t := item.Task
		var reviewID, origin, due interface{}
		if t.ReviewLink != nil {
			reviewID = t.ReviewLink.ReviewID
			origin = nullableDate(t.ReviewLink.OriginDate)
			due = nullableDate(t.ReviewLink.DueDate)
		}
		_, err := r.db.ExecContext(ctx, `INSERT INTO daily_plan_items (plan_id, task_id, task_type, layer,
			item_order, duration_min, label, subject_id, review_id, origin_date, due_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			planID, t.ID, string(t.Type), string(item.Layer), item.Order, t.Duration.Minutes(),
			t.Label, t.SubjectID, reviewID, origin, due)
		if err != nil {
			return fmt.Errorf("inserting plan item %s: %w", t.ID, err)
		}
	}
	return nil
}

func (r *SQLiteDailyPlanRepo) GetByDate(ctx context.Context, userID string, date domain.CalendarDate) (*StoredPlan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, plan_date, status, available_min, reserved_min, snapshot_id, created_at, updated_at
		FROM daily_plans WHERE user_id = ? AND plan_date = ?`, userID, date.String())
	header, err := scanPlanHeader(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("daily plan %s: %w", date, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning daily plan: %w", err)
	}
	return r.load(ctx, header)
}

func (r *SQLiteDailyPlanRepo) ListInRange(ctx context.Context, userID string, rng domain.DateRange) ([]*StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, plan_date, status, available_min, reserved_min, snapshot_id, created_at, updated_at
		FROM daily_plans WHERE user_id = ? AND plan_date BETWEEN ? AND ? ORDER BY plan_date`,
		userID, rng.From.String(), rng.To.String())
	if err != nil {
		return nil, fmt.Errorf("querying daily plans: %w", err)
	}
	var headers []*planHeader
	for rows.Next() {
		h, err := scanPlanHeader(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning daily plan: %w", err)
		}
		headers = append(headers, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*StoredPlan, 0, len(headers))
	for _, h := range headers {
		sp, err := r.load(ctx, h)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, nil
}

func (r *SQLiteDailyPlanRepo) DeleteByDate(ctx context.Context, userID string, date domain.CalendarDate) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM daily_plans WHERE user_id = ? AND plan_date = ?`,
		userID, date.String())
	if err != nil {
		return fmt.Errorf("deleting daily plan %s: %w", date, err)
	}
	return requireOneRow(res, "daily plan "+date.String())
}

type planHeader struct {
	id         string
	date       domain.CalendarDate
	status     domain.PlanStatus
	available  domain.PlannedDuration
	reserved   domain.PlannedDuration
	snapshotID string
	createdAt  time.Time
	updatedAt  time.Time
}

func scanPlanHeader(row rowScanner) (*planHeader, error) {
	var (
		h                    planHeader
		date, status         string
		available, reserved  int
		createdAt, updatedAt string
	)
	if err := row.Scan(&h.id, &date, &status, &available, &reserved, &h.snapshotID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if h.date, err = parseDateColumn("plan_date", date); err != nil {
		return nil, err
	}
	if h.available, err = durationColumn("available_min", available); err != nil {
		return nil, err
	}
	if h.reserved, err = durationColumn("reserved_min", reserved); err != nil {
		return nil, err
	}
	h.status = domain.PlanStatus(status)
	h.createdAt = parseTime(createdAt)
	h.updatedAt = parseTime(updatedAt)
	return &h, nil
}

// load reads the items and rebuilds the plan through domain.NewDailyPlan,
// so a stored plan that breaks an invariant fails to load.
func (r *SQLiteDailyPlanRepo) load(ctx context.Context, h *planHeader) (*StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT task_id, task_type, layer, item_order, duration_min, label,
		subject_id, review_id, origin_date, due_date
		FROM daily_plan_items WHERE plan_id = ? ORDER BY item_order, task_id`, h.id)
	if err != nil {
		return nil, fmt.Errorf("querying plan items: %w", err)
	}
	defer rows.Close()

	var items []domain.DailyPlanItem
	for rows.Next() {
		var (
			item                  domain.DailyPlanItem
			taskType, layer       string
			minutes               int
			reviewID, origin, due sql.NullString
		)
		if err := rows.Scan(&item.Task.ID, &taskType, &layer, &item.Order, &minutes, &item.Task.Label,
			&item.Task.SubjectID, &reviewID, &origin, &due); err != nil {
			return nil, fmt.Errorf("scanning plan item: %w", err)
		}
		item.Task.Type = domain.TaskType(taskType)
		item.Layer = domain.Layer(layer)
		if item.Task.Duration, err = durationColumn("duration_min", minutes); err != nil {
			return nil, err
		}
		if reviewID.Valid {
			link := &domain.ReviewLink{ReviewID: reviewID.String, SubjectID: item.Task.SubjectID}
			if link.OriginDate, err = parseNullableDate("origin_date", origin); err != nil {
				return nil, err
			}
			if link.DueDate, err = parseNullableDate("due_date", due); err != nil {
				return nil, err
			}
			item.Task.ReviewLink = link
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	plan, err := domain.NewDailyPlan(h.date, h.status, h.available, items)
	if err == nil {
		plan, err = plan.WithReserve(h.reserved)
	}
	if err != nil {
		return nil, fmt.Errorf("loading daily plan %s: %w", h.date, err)
	}
	return &StoredPlan{
		ID:         h.id,
		Plan:       plan,
		SnapshotID: h.snapshotID,
		CreatedAt:  h.createdAt,
		UpdatedAt:  h.updatedAt,
	}, nil
}
