package report

import (
	"regexp"
	"time"
)

const dateLayout = "02/01/2006"

var (
	cutoffDateRegex = regexp.MustCompile(`(?i)até[\s|]+(\d{2}/\d{2}/\d{4})`)
	anyDateRegex    = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
)

// ExtractReportDate procura a data de corte do relatório.
// Ordem: "até DD/MM/AAAA", depois a primeira data DD/MM/AAAA do texto, depois a data de hoje.
// Entre "até" e a data podem aparecer os separadores " | " de elementos HTML distintos.
func ExtractReportDate(text string, now func() time.Time) string {
	if m := cutoffDateRegex.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := anyDateRegex.FindString(text); m != "" {
		return m
	}
	if now == nil {
		now = time.Now
	}
	return now().Format(dateLayout)
}
