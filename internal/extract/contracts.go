package extract

import (
	"strings"

	"github.com/samber/lo"
)

// Contract vocabulary as it appears on the offer pages. "kontrakt B2B" is
// canonicalized to plain "B2B".
var contractVocabulary = []string{
	"umowa o pracę",
	"umowa zlecenie",
	"umowa o dzieło",
	"B2B",
	"kontrakt B2B",
}

// ContractTypes matches the vocabulary case-insensitively against the page
// text and returns the found types deduplicated in first-seen order. Always
// returns a non-nil slice.
func ContractTypes(fullText string) []string {

	lower := strings.ToLower(fullText)

	types := make([]string, 0, len(contractVocabulary))
	for _, key := range contractVocabulary {
		if !strings.Contains(lower, strings.ToLower(key)) {
			continue
		}
		if strings.EqualFold(key, "kontrakt B2B") {
			types = append(types, "B2B")
		} else {
			types = append(types, key)
		}
	}

	return lo.Uniq(types)
}
