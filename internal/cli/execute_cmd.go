package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/contract"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// actualFlag collects repeated --actual task=minutes pairs.
type actualFlag map[string]int

var _ pflag.Value = actualFlag(nil)

func (f actualFlag) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strconv.Itoa(f[k]))
	}
	return strings.Join(parts, ",")
}

func (f actualFlag) Set(v string) error {
	for _, pair := range strings.Split(v, ",") {
		ref, minutes, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || ref == "" {
			return fmt.Errorf("expected task=minutes, got %q", pair)
		}
		n, err := strconv.Atoi(minutes)
		if err != nil {
			return fmt.Errorf("minutes for %s: %w", ref, err)
		}
		f[ref] = n
	}
	return nil
}

func (f actualFlag) Type() string { return "task=min" }

func newExecuteCmd(app *App) *cobra.Command {
	var done []string
	var all, show bool
	actual := actualFlag{}

	cmd := &cobra.Command{
		Use:   "execute [date]",
		Short: "Record what was actually studied on a date",
		Long: `Record the execution of a date (default today). Tasks are referred to by
their number in "plan show" or by task id. Completed tasks count their planned
minutes unless --actual gives another figure. An execution is written once and
cannot be changed.`,
		Example: `  pauta execute --done 1,3
  pauta execute 2026-10-14 --done 1 --actual 1=40 --actual 2=15`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			date := dateArg(app, args)

			if show {
				exec, err := app.Executions.GetByDate(ctx, app.UserID, date)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExecutedDay(exec))
				return nil
			}

			req := contract.NewRecordExecutionRequest(app.UserID, date)
			if all || needsPlan(done, actual) {
				resp, err := app.Plans.Generate(ctx, contract.NewGenerateDailyPlanRequest(app.UserID, date))
				if err != nil {
					return err
				}
				if all {
					done = allTaskRefs(resp.Plan)
				}
				if req.CompletedTaskIDs, err = resolveTaskRefs(resp.Plan, done); err != nil {
					return err
				}
				for ref, minutes := range actual {
					ids, err := resolveTaskRefs(resp.Plan, []string{ref})
					if err != nil {
						return err
					}
					req.ActualMinByTask[ids[0]] = minutes
				}
			} else {
				req.CompletedTaskIDs = done
				for id, minutes := range actual {
					req.ActualMinByTask[id] = minutes
				}
			}

			resp, err := app.Executions.Record(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExecution(resp))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&done, "done", nil, "Completed tasks (numbers or ids, comma separated)")
	cmd.Flags().Var(actual, "actual", "Actual minutes for a task as task=minutes (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "Mark every planned task as completed")
	cmd.Flags().BoolVar(&show, "show", false, "Show the recorded execution instead of recording one")
	cmd.MarkFlagsMutuallyExclusive("all", "done")
	cmd.MarkFlagsMutuallyExclusive("show", "done")
	cmd.MarkFlagsMutuallyExclusive("show", "all")

	return cmd
}

func isItemNumber(ref string) bool {
	n, err := strconv.Atoi(ref)
	return err == nil && n > 0
}

func needsPlan(done []string, actual actualFlag) bool {
	for _, ref := range done {
		if isItemNumber(ref) {
			return true
		}
	}
	for ref := range actual {
		if isItemNumber(ref) {
			return true
		}
	}
	return false
}

func allTaskRefs(plan *domain.DailyPlan) []string {
	items := plan.Items()
	refs := make([]string, 0, len(items))
	for _, item := range items {
		refs = append(refs, item.Task.ID)
	}
	return refs
}

// resolveTaskRefs maps item numbers to task ids of plan. Non-numeric refs
// are kept as ids.
func resolveTaskRefs(plan *domain.DailyPlan, refs []string) ([]string, error) {
	items := plan.Items()
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if !isItemNumber(ref) {
			ids = append(ids, ref)
			continue
		}
		n, _ := strconv.Atoi(ref)
		if n > len(items) {
			return nil, domain.Errorf(domain.CodeDomainViolation, "the plan for %s has %d task(s), no #%d", plan.Date(), len(items), n)
		}
		ids = append(ids, items[n-1].Task.ID)
	}
	return ids, nil
}
