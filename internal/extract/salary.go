package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const DefaultCurrency = "PLN"

var (
	salaryPattern = regexp.MustCompile(`(?i)[\d\s.,]+-\s*[\d\s.,]+\s*zł\s*(?:brutto|netto)?|[\d\s.,]+\s*zł\s*(?:brutto|netto)?`)
	salaryHint      = regexp.MustCompile(`(?i)\bzł\b|brutto|netto`)
	numberPattern   = regexp.MustCompile(`\d+(?:\.\d+)*`)
	thousandsGroups = regexp.MustCompile(`(\d)\s+(\d{3})\b`)
)

// SalaryText finds the raw salary phrase: a currency-suffixed range or single
// value anywhere in the page text, else the first text node that at least
// mentions the currency or a gross/net qualifier.
func SalaryText(d *Document) string {

	if m := salaryPattern.FindString(d.FullText()); m != "" {
		return strings.TrimSpace(m)
	}

	return findTextNode(d.doc.Selection, salaryHint)
}

// ParseSalary normalizes free-form salary text into integer bounds. Values
// below 1000 are read as thousands shorthand ("3-5" meaning 3000-5000); this
// follows the source sites' convention and can misread genuinely small
// figures such as hourly rates.
func ParseSalary(text string) (min, max *int, currency string) {

	currency = DefaultCurrency
	if text == "" {
		return nil, nil, currency
	}

	t := strings.ReplaceAll(text, " ", " ")
	t = strings.ReplaceAll(t, ",", ".")

	// "3 500" is one number with a grouped thousand, not two tokens
	for {
		collapsed := thousandsGroups.ReplaceAllString(t, "$1$2")
		if collapsed == t {
			break
		}
		t = collapsed
	}

	var vals []int
	for _, token := range numberPattern.FindAllString(t, -1) {
		val, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		if val < 1000 {
			val *= 1000
		}
		vals = append(vals, int(val))
	}

	if len(vals) == 0 {
		return nil, nil, currency
	}

	lowest, highest := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lowest {
			lowest = v
		}
		if v > highest {
			highest = v
		}
	}
	return &lowest, &highest, currency
}
