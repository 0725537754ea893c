package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_StringList_NilSerializesAsEmptyArray(t *testing.T) {

	var list StringList

	value, err := list.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func Test_StringList_ScanToleratesMalformedValues(t *testing.T) {

	cases := []interface{}{nil, "null", `"tekst"`, "42", "not json", []byte("{}")}

	for _, src := range cases {
		var list StringList
		err := list.Scan(src)
		assert.NoError(t, err, "source: %v", src)
		assert.NotNil(t, list, "source: %v", src)
		assert.Empty(t, list, "source: %v", src)
	}
}

func Test_StringList_RoundTrip(t *testing.T) {

	original := StringList{"umowa o pracę", "B2B"}

	value, err := original.Value()
	assert.NoError(t, err)

	var scanned StringList
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func Test_JobPosting_BeforeSave_DerivesLocation(t *testing.T) {

	job := JobPosting{City: "Gdynia", Region: "Pomorskie"}
	assert.NoError(t, job.BeforeSave(nil))
	assert.Equal(t, "Gdynia, Pomorskie", job.Location)

	job = JobPosting{Region: "Pomorskie"}
	assert.NoError(t, job.BeforeSave(nil))
	assert.Equal(t, "Pomorskie", job.Location)

	job = JobPosting{City: "Gdynia", Region: "Pomorskie", Location: "Trójmiasto"}
	assert.NoError(t, job.BeforeSave(nil))
	assert.Equal(t, "Trójmiasto", job.Location)
}

func Test_JobPosting_BeforeSave_InitializesNilLists(t *testing.T) {

	job := JobPosting{}
	assert.NoError(t, job.BeforeSave(nil))

	for _, list := range []StringList{job.ContractTypes, job.Duties, job.Requirements, job.Benefits} {
		assert.NotNil(t, list)
		assert.Empty(t, list)
	}
}
