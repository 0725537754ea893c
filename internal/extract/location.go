package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fixed gazetteers. City matches are canonicalized with Polish title casing;
// voivodeship matches keep their lowercase tail with only the first letter
// raised, which is how the names are conventionally written.
var knownCities = []string{
	"Szczecin", "Warszawa", "Gdańsk", "Poznań", "Wrocław", "Kraków", "Łódź",
	"Katowice", "Białystok", "Rzeszów", "Lublin", "Gdynia", "Sopot",
}

var knownRegions = []string{
	"dolnośląskie", "kujawsko-pomorskie", "lubelskie", "lubuskie", "łódzkie",
	"małopolskie", "mazowieckie", "opolskie", "podkarpackie", "podlaskie",
	"pomorskie", "śląskie", "świętokrzyskie", "warmińsko-mazurskie",
	"wielkopolskie", "zachodniopomorskie",
}

var detailsBlockSelector = ".job-details, .details, .offer-details, .job-offer, main, body"

var polishTitle = cases.Title(language.Polish)

// Location pulls the address tag's text and scans the details block for a
// known city and voivodeship. Everything is optional.
func Location(d *Document) (address, city, region string) {

	block := d.find(detailsBlockSelector).First()
	if block.Length() == 0 {
		block = d.doc.Selection
	}

	address = normalizeWhitespace(block.Find("address").First().Text())

	text := visibleText(block)
	if match := findGazetteerMatch(text, knownCities); match != "" {
		city = polishTitle.String(strings.ToLower(match))
	}
	if match := findGazetteerMatch(text, knownRegions); match != "" {
		region = upperFirst(strings.ToLower(match))
	}
	return address, city, region
}

// findGazetteerMatch looks for any of the names as a case-insensitive whole
// word and returns the name as listed in the gazetteer.
func findGazetteerMatch(text string, names []string) string {
	lower := strings.ToLower(text)
	for _, name := range names {
		target := strings.ToLower(name)
		from := 0
		for {
			i := strings.Index(lower[from:], target)
			if i < 0 {
				break
			}
			pos := from + i
			if isWordSeparated(lower, pos, pos+len(target)) {
				return name
			}
			from = pos + len(target)
		}
	}
	return ""
}

func isWordSeparated(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
