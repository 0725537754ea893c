package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Location_AddressTagAndGazetteers(t *testing.T) {

	doc := mustDocument(t, `<html><body>
		<div class="job-details">
			<address>ul. Kwiatowa 15,  70-001 </address>
			Miejsce pracy: SZCZECIN, woj. ZACHODNIOPOMORSKIE
		</div>
	</body></html>`)

	address, city, region := Location(doc)

	assert.Equal(t, "ul. Kwiatowa 15, 70-001", address)
	assert.Equal(t, "Szczecin", city)
	assert.Equal(t, "Zachodniopomorskie", region)
}

func Test_Location_DiacriticCityIsCanonicalized(t *testing.T) {

	doc := mustDocument(t, `<html><body><main>Praca w mieście łódź, łódzkie</main></body></html>`)

	_, city, region := Location(doc)

	assert.Equal(t, "Łódź", city)
	assert.Equal(t, "Łódzkie", region)
}

func Test_Location_HyphenatedRegionKeepsLowercaseTail(t *testing.T) {

	doc := mustDocument(t, `<html><body><main>Bydgoszcz, kujawsko-pomorskie</main></body></html>`)

	_, city, region := Location(doc)

	assert.Equal(t, "", city)
	assert.Equal(t, "Kujawsko-pomorskie", region)
}

func Test_Location_NoMatchInsideLongerWord(t *testing.T) {

	// an inflected form like "Sopotem" must not match the city Sopot
	doc := mustDocument(t, `<html><body><main>zakład produkcyjny pod Sopotem</main></body></html>`)

	_, city, _ := Location(doc)

	assert.Equal(t, "", city)
}

func Test_Location_NothingFound(t *testing.T) {

	doc := mustDocument(t, `<html><body><main>praca za granicą</main></body></html>`)

	address, city, region := Location(doc)

	assert.Equal(t, "", address)
	assert.Equal(t, "", city)
	assert.Equal(t, "", region)
}
