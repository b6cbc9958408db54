package cli

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
)

// resolveDate expands the relative forms accepted on the command line
// ("today", "tomorrow", "yesterday", "+N", "-N") into an ISO date. Anything
// else is passed through for the use case to validate.
func resolveDate(today domain.CalendarDate, arg string) string {
	arg = strings.TrimSpace(strings.ToLower(arg))
	offset := 0
	switch arg {
	case "", "today":
	case "tomorrow":
		offset = 1
	case "yesterday":
		offset = -1
	default:
		if !strings.HasPrefix(arg, "+") && !strings.HasPrefix(arg, "-") {
			return arg
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return arg
		}
		offset = n
	}
	d, err := today.AddDays(offset)
	if err != nil {
		return arg
	}
	return d.String()
}

func dateArg(app *App, args []string) string {
	if len(args) == 0 {
		return resolveDate(app.today(), "")
	}
	return resolveDate(app.today(), args[0])
}

// parseCLIDate parses an already resolved range bound named field. A
// malformed bound is an INVALID_DATE_RANGE, as the projection itself
// reports it.
func parseCLIDate(field, s string) (domain.CalendarDate, error) {
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.CalendarDate{}, domain.Errorf(domain.CodeInvalidDateRange, "%s: %v", field, err)
	}
	return d, nil
}

// rangeEnd returns the last date of a days-long range starting at from.
func rangeEnd(from string, days int) (string, error) {
	start, err := parseCLIDate("from", from)
	if err != nil {
		return "", err
	}
	end, err := start.AddDays(days - 1)
	if err != nil {
		return "", domain.Errorf(domain.CodeInvalidDateRange, "%d days from %s: %v", days, start, err)
	}
	return end.String(), nil
}
