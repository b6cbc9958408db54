package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBudget renders how much of a day's budget a plan uses, like
// [████░░░░] 90m/120m. A full day is green, a mostly idle one dim.
func RenderBudget(used, available, width int) string {
	if width < 2 {
		width = 2
	}
	if available <= 0 {
		return fmt.Sprintf("[%s] %s", StyleDim.Render(strings.Repeat(emptyBlock, width)), Dim("rest"))
	}
	used = min(max(used, 0), available)
	filled := used * width / available
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch pct := float64(used) / float64(available); {
	case pct < 0.5:
		style = StyleDim
	case pct < 0.9:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %dm/%dm", style.Render(bar), used, available)
}
