package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/contract"
	"github.com/alexanderramin/pauta/internal/domain"
)

// FormatExecutedDay renders the factual record of one studied date.
func FormatExecutedDay(exec *domain.ExecutedDay) string {
	var b strings.Builder
	b.WriteString(Header("Recorded " + exec.Date().String()))
	b.WriteString("\n")

	rows := make([][]string, 0, len(exec.Items()))
	for _, item := range exec.Items() {
		done := Dim("·")
		if item.Completed {
			done = StyleGreen.Render("✔")
		}
		rows = append(rows, []string{done, TaskBadge(item.Type), StyleFg.Render(item.Label), FormatMinutes(item.Actual.Minutes())})
	}
	b.WriteString(Table{Headers: []string{"", "TYPE", "TASK", "ACTUAL"}, Rows: rows, Right: []int{3}}.Render())
	b.WriteString(fmt.Sprintf("\nStudied %s\n", Bold(FormatMinutes(exec.Total().Minutes()))))
	return b.String()
}

// FormatExecution summarizes a freshly recorded day and its effect on the
// review ledger.
func FormatExecution(resp *contract.RecordExecutionResponse) string {
	var b strings.Builder
	b.WriteString(FormatExecutedDay(resp.Execution))

	for _, e := range resp.ScheduledReviews {
		b.WriteString(StylePurple.Render("↻ ") + fmt.Sprintf("Review of %s scheduled for %s\n", e.SubjectName, e.ScheduledDate))
	}
	if n := len(resp.ExecutedReviews); n > 0 {
		b.WriteString(StyleGreen.Render("✔ ") + fmt.Sprintf("%d review(s) done\n", n))
	}
	if n := len(resp.LapsedReviews); n > 0 {
		b.WriteString(StyleYellow.Render("! ") + fmt.Sprintf("%d review(s) had already lapsed and stay missed\n", n))
	}
	return b.String()
}
