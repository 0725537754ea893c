package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const descriptionSelectors = "article p, .description p, .job-description p"

const maxDescriptionParagraphs = 12

// ListSection collects the list items under a data-test tagged section, e.g.
// "responsibilities", "requirements" or "benefits". Item text is whitespace
// normalized and empty items are dropped. Always returns a non-nil slice.
func ListSection(d *Document, section string) []string {

	items := make([]string, 0)
	d.find(fmt.Sprintf(`[data-test="section-%s"] li`, section)).Each(func(_ int, li *goquery.Selection) {
		if text := visibleText(li); text != "" {
			items = append(items, text)
		}
	})
	return items
}

// Description concatenates up to twelve paragraphs from the content
// candidates. When the page carries no usable paragraphs, a short sentence is
// synthesized from the fields extracted so far, with a generic fallback when
// even those are missing.
func Description(d *Document, company, title, city, region string) string {

	var paragraphs []string
	d.find(descriptionSelectors).EachWithBreak(func(i int, p *goquery.Selection) bool {
		if i >= maxDescriptionParagraphs {
			return false
		}
		if text := visibleText(p); text != "" {
			paragraphs = append(paragraphs, text)
		}
		return true
	})

	if description := strings.TrimSpace(strings.Join(paragraphs, " ")); description != "" {
		return description
	}

	var parts []string
	if company != "" {
		parts = append(parts, fmt.Sprintf("Oferta w firmie %s", company))
	}
	if title != "" {
		parts = append(parts, fmt.Sprintf("na stanowisku %s", title))
	}
	if location := joinLocation(city, region); location != "" {
		parts = append(parts, fmt.Sprintf("(%s)", location))
	}
	if len(parts) == 0 {
		return "Oferta pracy. Szczegóły nie zostały podane w oryginalnej treści."
	}
	return strings.Join(parts, " ") + "."
}

func joinLocation(city, region string) string {
	var bits []string
	for _, b := range []string{city, region} {
		if b != "" {
			bits = append(bits, b)
		}
	}
	return strings.Join(bits, ", ")
}
