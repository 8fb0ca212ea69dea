package sfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queryBody = `{"totalSize":1,"done":true,"records":[{"attributes":{"type":"Account"},"Id":"001x0","Name":"Acme"}]}`

func TestDecodeAnyReturnsPlainMaps(t *testing.T) {
	data, err := Decode(DecodeAny, []byte(queryBody))
	require.NoError(t, err)

	m, ok := data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, m["done"])
	assert.Equal(t, float64(1), m["totalSize"])
}

func TestDecodeRecordWrapsObjects(t *testing.T) {
	data, err := Decode(DecodeRecord, []byte(queryBody))
	require.NoError(t, err)

	rec, ok := data.(Record)
	require.True(t, ok)
	assert.True(t, rec.Bool("done"))
	assert.Equal(t, 1, rec.Int("totalSize"))

	records := rec.Records("records")
	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0].String("Name"))
	assert.Equal(t, "Account", records[0].Record("attributes").String("type"))
}

func TestDecodeRecordWrapsTopLevelArrays(t *testing.T) {
	data, err := Decode(DecodeRecord, []byte(`[{"message":"bad","errorCode":"X"}]`))
	require.NoError(t, err)

	records, ok := data.([]Record)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, "bad", records[0].String("message"))
}

func TestDecodeSameTreeBothModes(t *testing.T) {
	anyTree, err := Decode(DecodeAny, []byte(queryBody))
	require.NoError(t, err)
	recTree, err := Decode(DecodeRecord, []byte(queryBody))
	require.NoError(t, err)

	rec := recTree.(Record)
	assert.Equal(t, anyTree.(map[string]interface{})["totalSize"], rec["totalSize"])
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(DecodeAny, []byte(`{nope`))
	assert.Error(t, err)
}

func TestRecordAccessorsTolerateMissingKeys(t *testing.T) {
	rec := Record{}
	assert.Empty(t, rec.String("missing"))
	assert.False(t, rec.Bool("missing"))
	assert.Zero(t, rec.Int("missing"))
	assert.Nil(t, rec.Record("missing"))
	assert.Nil(t, rec.Records("missing"))
}
