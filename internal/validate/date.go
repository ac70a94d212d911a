package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
)

// MaxDateAgeDays is the oldest accepted date, counted back from today.
const MaxDateAgeDays = 3650

// datePattern is one accepted date spelling with the capture group index
// of each component.
type datePattern struct {
	re               *regexp.Regexp
	year, month, day int
}

// datePatterns are tried in order; the first that matches decides.
var datePatterns = []datePattern{
	{re: regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`), year: 1, month: 2, day: 3},
	{re: regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`), day: 1, month: 2, year: 3},
	{re: regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{4})\b`), day: 1, month: 2, year: 3},
}

// Date accepts YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY and returns the date
// as a YYYY-MM-DD string. Future dates and dates older than
// MaxDateAgeDays are rejected.
func Date(raw string) Result {
	d, ok, reason := parseDate(raw)
	if !ok {
		return Reject(reason)
	}

	now := timeNow()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.After(today) {
		return Reject(fmt.Sprintf("La date %s est dans le futur. Indiquez une date passée.", d.Format("02/01/2006")))
	}
	if age := int(today.Sub(d).Hours() / 24); age > MaxDateAgeDays {
		return Reject(fmt.Sprintf("La date %s remonte à plus de 10 ans (%d jours). Vérifiez la saisie.", d.Format("02/01/2006"), age))
	}
	return Accept(d.Format(audit.DateLayout))
}

// parseDate finds the first supported date spelling in raw.
func parseDate(raw string) (time.Time, bool, string) {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[p.year])
		month, _ := strconv.Atoi(m[p.month])
		day, _ := strconv.Atoi(m[p.day])

		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if d.Year() != year || int(d.Month()) != month || d.Day() != day {
			return time.Time{}, false, fmt.Sprintf("« %s » n'est pas une date valide.", m[0])
		}
		return d, true, ""
	}
	return time.Time{}, false, "Format de date non reconnu. Utilisez JJ/MM/AAAA (ex. 15/03/2024) ou AAAA-MM-JJ."
}
