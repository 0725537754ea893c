package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var polishMonths = map[string]time.Month{
	"stycznia":     time.January,
	"lutego":       time.February,
	"marca":        time.March,
	"kwietnia":     time.April,
	"maja":         time.May,
	"czerwca":      time.June,
	"lipca":        time.July,
	"sierpnia":     time.August,
	"września":     time.September,
	"października": time.October,
	"listopada":    time.November,
	"grudnia":      time.December,
}

var (
	postedAtLabel     = regexp.MustCompile(`(?i)Opublikowano|Dodano|Published`)
	localizedDateForm = regexp.MustCompile(`(\d{1,2})\s+([a-ząćęłńóśźż]+)\s+(\d{4})`)
)

var isoLayouts = []string{"2006-01-02", "2006-01-02T15:04:05"}

// PostedAt locates the posting date: a date-labeled text node first, a
// generic time element second, and parses whatever text either carries.
func PostedAt(d *Document) *time.Time {

	text := findTextNode(d.doc.Selection, postedAtLabel)
	if text == "" {
		text = visibleText(d.find("time").First())
	}
	if text == "" {
		return nil
	}
	return ParseDate(text)
}

// ParseDate runs the two-stage date parser: the localized "12 lipca 2024"
// form always wins; a strict calendar parse of the raw text is only tried
// when the localized pattern does not match.
func ParseDate(text string) *time.Time {

	if m := localizedDateForm.FindStringSubmatch(strings.ToLower(text)); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		month, ok := polishMonths[m[2]]
		if !ok {
			month = time.January
		}
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if date.Day() != day || date.Month() != month {
			return nil
		}
		return &date
	}

	trimmed := strings.TrimSpace(text)
	for _, layout := range isoLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			date := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return &date
		}
	}
	return nil
}
