package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/contract"
	"github.com/alexanderramin/pauta/internal/domain"
)

// FormatReviewTasks lists the reviews still owed in a range, followed by a
// one-line account of the ledger.
func FormatReviewTasks(resp *contract.ComputeReviewTasksResponse, today domain.CalendarDate) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Reviews %s → %s", resp.Range.From, resp.Range.To)))
	b.WriteString("\n")

	if len(resp.Tasks) == 0 {
		b.WriteString(Dim("No reviews due in this range."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(resp.Tasks))
		for _, task := range resp.Tasks {
			due := task.ReviewLink.DueDate
			rows = append(rows, []string{
				ShortWeekday(due) + " " + due.String(),
				Dim(RelativeDays(due, today)),
				StyleFg.Render(task.Label),
				FormatMinutes(task.Duration.Minutes()),
			})
		}
		b.WriteString(Table{Headers: []string{"DUE", "", "REVIEW", "TIME"}, Rows: rows, Right: []int{3}}.Render())
	}

	counts := map[domain.ReviewStatus]int{}
	for _, e := range resp.Entries {
		counts[e.Status]++
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		StyleGreen.Render(fmt.Sprintf("%d pending", len(resp.Tasks))),
		StyleBlue.Render(fmt.Sprintf("%d executed", counts[domain.ReviewExecuted])),
		StyleRed.Render(fmt.Sprintf("%d missed", counts[domain.ReviewMissed]))))
	if resp.MarkedMissed > 0 {
		b.WriteString(Dim(fmt.Sprintf("%d lapsed review(s) closed as missed just now", resp.MarkedMissed)))
		b.WriteString("\n")
	}
	return b.String()
}
