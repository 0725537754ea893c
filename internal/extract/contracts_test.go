package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ContractTypes_DedupAndCanonicalization(t *testing.T) {

	text := "Oferujemy umowę... umowa o pracę lub kontrakt B2B, także B2B dla chętnych"

	types := ContractTypes(text)

	assert.Equal(t, []string{"umowa o pracę", "B2B"}, types)
}

func Test_ContractTypes_CaseInsensitive(t *testing.T) {

	types := ContractTypes("UMOWA ZLECENIE od zaraz")

	assert.Equal(t, []string{"umowa zlecenie"}, types)
}

func Test_ContractTypes_NoMatchesYieldsEmptySlice(t *testing.T) {

	types := ContractTypes("praca sezonowa bez formalności")

	assert.NotNil(t, types)
	assert.Empty(t, types)
}
