package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_ExecutionInsertRace verifies that when several
// goroutines record an execution for the same (user, date) at once, exactly
// one insert wins and every other one reports ErrDuplicate.
func TestConcurrentAccess_ExecutionInsertRace(t *testing.T) {
	database := testutil.NewTestFileDB(t)
	ctx := context.Background()
	uow := db.NewSQLiteUnitOfWork(database)

	const writers = 8
	var wins, dups, busy atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for w := 0; w < writers; w++ {
		e := sampleExecution(t, "2026-10-12")
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return NewSQLiteExecutionRepo(tx).Insert(ctx, "u1", e)
			})
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, ErrDuplicate):
				dups.Add(1)
			case errors.Is(err, db.ErrBusy):
				busy.Add(1)
			default:
				t.Errorf("writer error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load(), "exactly one execution is recorded")
	assert.Equal(t, int32(writers-1), dups.Load()+busy.Load(), "every other writer loses")

	var rows int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM executed_days WHERE user_id = 'u1' AND exec_date = '2026-10-12'`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

// TestConcurrentAccess_ReadDuringWrite verifies that plan reads stay
// consistent while another goroutine keeps replacing plans.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := testutil.NewTestFileDB(t)
	ctx := context.Background()
	uow := db.NewSQLiteUnitOfWork(database)
	reader := NewSQLiteDailyPlanRepo(database)

	plan := samplePlan(t, "2026-10-19")
	require.NoError(t, NewSQLiteDailyPlanRepo(database).Upsert(ctx, "u1", plan, "profile:u1:r1"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return NewSQLiteDailyPlanRepo(tx).Upsert(ctx, "u1", plan, "profile:u1:r1")
			})
			if err != nil {
				t.Errorf("writer: upsert %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				stored, err := reader.GetByDate(ctx, "u1", plan.Date())
				if err != nil {
					t.Errorf("reader %d: %v", n, err)
					return
				}
				// A half-replaced plan would show fewer items.
				if len(stored.Plan.Items()) != 2 {
					t.Errorf("reader %d: saw %d items", n, len(stored.Plan.Items()))
					return
				}
			}
		}(r)
	}
	wg.Wait()
}
