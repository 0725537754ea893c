package extract

import (
	"strings"

	"github.com/samber/lo"
)

var titleSelectors = []string{"h1", "h1.job-title", ".job-title"}

// Selector cascade covering the company element across the portals we have
// seen. First non-empty, non-generic hit wins.
var companySelectors = []string{
	`[data-test="text-company-name"]`,
	`a[data-test="link-company-name"]`,
	".company",
	".posting-company",
	".employer",
	".job-header__company",
	".job-company",
	`a[href*="company"]`,
	`a[aria-label*="Firma"]`,
}

var genericCompanyPhrases = []string{"o firmie", "informacje o firmie"}

var remotePhrases = []string{"praca zdalna", "zdalna", "remote"}

const fullTimePhrase = "pełny etat"

func Title(d *Document) string {
	for _, sel := range titleSelectors {
		if text := normalizeWhitespace(d.find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func Company(d *Document) string {
	for _, sel := range companySelectors {
		text := normalizeWhitespace(d.find(sel).First().Text())
		if text != "" && !IsGenericCompany(text) {
			return text
		}
	}
	return ""
}

// IsGenericCompany reports whether a company candidate is one of the portal
// boilerplate phrases rather than an actual name.
func IsGenericCompany(name string) bool {
	return lo.Contains(genericCompanyPhrases, strings.ToLower(name))
}

func IsRemote(d *Document) bool {
	text := strings.ToLower(d.FullText())
	return lo.SomeBy(remotePhrases, func(phrase string) bool {
		return strings.Contains(text, phrase)
	})
}

func WorkTime(d *Document) string {
	if strings.Contains(strings.ToLower(d.FullText()), fullTimePhrase) {
		return fullTimePhrase
	}
	return ""
}
