package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseSalary_RangeWithGroupedThousands(t *testing.T) {

	min, max, currency := ParseSalary("3 500 - 5 000 zł brutto")

	assert.NotNil(t, min)
	assert.NotNil(t, max)
	assert.Equal(t, 3500, *min)
	assert.Equal(t, 5000, *max)
	assert.Equal(t, "PLN", currency)
}

func Test_ParseSalary_ShorthandFiguresScaleToThousands(t *testing.T) {

	min, max, currency := ParseSalary("3-5 zł")

	assert.Equal(t, 3000, *min)
	assert.Equal(t, 5000, *max)
	assert.Equal(t, "PLN", currency)
}

func Test_ParseSalary_SingleValueFillsBothBounds(t *testing.T) {

	min, max, _ := ParseSalary("6500 zł netto")

	assert.Equal(t, 6500, *min)
	assert.Equal(t, 6500, *max)
}

func Test_ParseSalary_NoNumericSignal(t *testing.T) {

	for _, text := range []string{"", "wynagrodzenie atrakcyjne", "zł brutto"} {
		min, max, currency := ParseSalary(text)
		assert.Nil(t, min, "input: %q", text)
		assert.Nil(t, max, "input: %q", text)
		assert.Equal(t, "PLN", currency)
	}
}

func Test_ParseSalary_NonBreakingSpacesAndCommaDecimals(t *testing.T) {

	min, max, _ := ParseSalary("4 500,50 zł brutto")

	assert.Equal(t, 4500, *min)
	assert.Equal(t, 4500, *max)
}

func Test_ParseSalary_MoreThanTwoTokensUsesExtremes(t *testing.T) {

	min, max, _ := ParseSalary("4000 albo 6000, nawet 8000 zł")

	assert.Equal(t, 4000, *min)
	assert.Equal(t, 8000, *max)
}

func Test_SalaryText_FindsRangeInPageText(t *testing.T) {

	doc, err := NewDocument(`<html><body><h1>Magazynier</h1>
		<div class="salary">3 500 - 5 000 zł brutto / mies.</div></body></html>`)
	assert.NoError(t, err)

	text := SalaryText(doc)
	assert.Contains(t, text, "3 500 - 5 000 zł")
}

func Test_SalaryText_FallsBackToCurrencyMention(t *testing.T) {

	doc, err := NewDocument(`<html><body><h1>Kierowca</h1>
		<p>Wynagrodzenie brutto ustalane indywidualnie</p></body></html>`)
	assert.NoError(t, err)

	assert.Equal(t, "Wynagrodzenie brutto ustalane indywidualnie", SalaryText(doc))
}
