// Package format turns raw API strings and clock readings into display text
// for the ru-RU locale the dashboard is written for.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholder is shown for empty date and time values.
const Placeholder = "--"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

var htmlUnescaper = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#039;", "'",
)

// EscapeText renders v as a string (nil becomes "") and escapes the five
// HTML-significant characters.
func EscapeText(v any) string {
	return htmlEscaper.Replace(toString(v))
}

// UnescapeText reverses EscapeText.
func UnescapeText(s string) string {
	return htmlUnescaper.Replace(s)
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	default:
		return fmt.Sprint(x)
	}
}

var weekdayLong = [...]string{
	time.Sunday:    "воскресенье",
	time.Monday:    "понедельник",
	time.Tuesday:   "вторник",
	time.Wednesday: "среда",
	time.Thursday:  "четверг",
	time.Friday:    "пятница",
	time.Saturday:  "суббота",
}

var weekdayShort = map[string]string{
	"понедельник": "пн",
	"вторник":     "вт",
	"среда":       "ср",
	"четверг":     "чт",
	"пятница":     "пт",
	"суббота":     "сб",
	"воскресенье": "вс",
}

// WeekdayName is the lowercase full ru name of t's weekday.
func WeekdayName(t time.Time) string {
	return weekdayLong[t.Weekday()]
}

// ShortWeekday returns the two-letter abbreviation used as day labels in the
// schedule sheet.
func ShortWeekday(t time.Time) string {
	return shortFor(WeekdayName(t))
}

func shortFor(full string) string {
	full = strings.ToLower(full)
	if s, ok := weekdayShort[full]; ok {
		return s
	}
	r := []rune(full)
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}

func TodayShortWeekday(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return ShortWeekday(now())
}

var folder = cases.Fold()

// SameDay compares day labels ignoring case and surrounding whitespace.
func SameDay(a, b string) bool {
	return folder.String(strings.TrimSpace(a)) == folder.String(strings.TrimSpace(b))
}

var isoPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// parseISO accepts only values that start like an ISO-8601 date-time.
// Values without an offset are read in loc.
func parseISO(s string, loc *time.Location) (time.Time, bool) {
	if !isoPrefix.MatchString(s) {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

func FormatDateOnly(v string, loc *time.Location) string {
	return formatISO(v, loc, "02.01.2006")
}

func FormatTimeOnly(v string, loc *time.Location) string {
	return formatISO(v, loc, "15:04")
}

func formatISO(v string, loc *time.Location, layout string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return Placeholder
	}
	if loc == nil {
		loc = time.Local
	}
	if t, ok := parseISO(s, loc); ok {
		return t.Format(layout)
	}
	return s
}

func ClockTime(t time.Time) string {
	return t.Format("15:04:05")
}

// ClockDate mirrors the ru-RU short weekday date, e.g. "пт, 16.10.2026".
func ClockDate(t time.Time) string {
	return ShortWeekday(t) + ", " + t.Format("02.01.2006")
}

// Title capitalises a label for headings.
func Title(s string) string {
	return cases.Title(language.Russian).String(s)
}
