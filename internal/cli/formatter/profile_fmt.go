package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pauta/internal/contract"
	"github.com/alexanderramin/pauta/internal/domain"
)

// FormatProfile renders the weekly budget, extras, review policy and rest
// periods of a profile.
func FormatProfile(p *domain.StudyProfile) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Study profile · %s", p.UserID)))
	b.WriteString("\n")

	rows := make([][]string, 0, 7)
	for wd := 1; wd <= 7; wd++ {
		rule, ok := p.WeekdayRules[wd]
		if !ok || rule.DailyMin == 0 {
			rows = append(rows, []string{WeekdayName(wd), Dim("rest"), ""})
			continue
		}
		var acts []string
		if rule.QuestionsEnabled {
			acts = append(acts, TaskBadge(domain.TaskQuestions))
		}
		if rule.InformativesEnabled {
			acts = append(acts, TaskBadge(domain.TaskInformatives))
		}
		if rule.LeiSecaEnabled {
			acts = append(acts, TaskBadge(domain.TaskLeiSeca))
		}
		if rule.TheoryEnabled {
			acts = append(acts, TaskBadge(domain.TaskTheory))
		}
		rows = append(rows, []string{WeekdayName(wd), FormatMinutes(rule.DailyMin), strings.Join(acts, " ")})
	}
	b.WriteString(Table{Headers: []string{"WEEKDAY", "BUDGET", "ACTIVITIES"}, Rows: rows, Right: []int{1}}.Render())
	b.WriteString(fmt.Sprintf("\nWeekly budget %s, %d subject(s) per day\n", Bold(FormatMinutes(p.WeeklyBudgetMin())), p.SubjectsPerDay))
	b.WriteString(fmt.Sprintf("Extras: questions %s · informatives %s · lei seca %s\n",
		FormatMinutes(p.Extras.QuestionsMin), FormatMinutes(p.Extras.InformativesMin), FormatMinutes(p.Extras.LeiSecaMin)))

	ar := p.AutoReview
	if ar.Enabled {
		line := fmt.Sprintf("Auto review: %s, %d day(s) after theory", FormatMinutes(ar.DurationMin), ar.FrequencyDays)
		if ar.ReserveTimeBlock {
			line += fmt.Sprintf(", %s reserved on theory days", FormatMinutes(ar.ReservedMin))
		}
		b.WriteString(line + "\n")
	} else {
		b.WriteString(Dim("Auto review off") + "\n")
	}

	for _, rp := range p.RestPeriods {
		label := rp.Label
		if label == "" {
			label = "rest"
		}
		b.WriteString(fmt.Sprintf("%s %s → %s %s\n", StyleDim.Render("○"), rp.Range.From, rp.Range.To, Dim(label)))
	}
	b.WriteString(Dim("revision " + strconv.Itoa(p.Revision)))
	b.WriteString("\n")
	return b.String()
}

// FormatSubjectList renders subjects in rotation order.
func FormatSubjectList(subjects []domain.Subject) string {
	rows := make([][]string, 0, len(subjects))
	for _, s := range subjects {
		state := StyleGreen.Render("● Active")
		switch {
		case !s.Active:
			state = StyleDim.Render("✖ Inactive")
		case s.RemainingTheoryMin == 0:
			state = StyleBlue.Render("✔ Theory done")
		}
		rows = append(rows, []string{
			Dim(strconv.Itoa(s.Position + 1)),
			Bold(s.Name),
			FormatMinutes(s.RemainingTheoryMin),
			state,
		})
	}
	return Table{Headers: []string{"#", "SUBJECT", "THEORY LEFT", "STATE"}, Rows: rows, Right: []int{0, 2}}.Render()
}

// FormatImportResult summarizes a profile import.
func FormatImportResult(res *contract.ImportResult) string {
	return fmt.Sprintf("%s Imported profile (revision %d): %d subject(s), %d created, %d updated\n",
		StyleGreen.Render("✔"), res.Profile.Revision, res.SubjectCount, res.Created, res.Updated)
}
