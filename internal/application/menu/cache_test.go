package menu

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorCacheEncodeParseRoundTrip(t *testing.T) {
	cache := &VectorCache{Entries: []VectorEntry{
		{Question: "a", Vector: []float64{0.12, -0.5, 1}},
		{Question: "b", Vector: []float64{0.9, 0.01, -0.3}},
	}}

	data, err := cache.Encode()
	require.NoError(t, err)

	parsed, err := ParseVectorCache(data)
	require.NoError(t, err)
	require.Equal(t, cache.Len(), parsed.Len())
	for i := range cache.Entries {
		assert.Equal(t, cache.Entries[i].Question, parsed.Entries[i].Question)
		assert.InDeltaSlice(t, cache.Entries[i].Vector, parsed.Entries[i].Vector, 1e-12)
	}
}

func TestVectorCachePersistedFieldNames(t *testing.T) {
	cache := &VectorCache{Entries: []VectorEntry{
		{Question: "a", Vector: []float64{1, 2}},
	}}

	data, err := cache.Encode()
	require.NoError(t, err)

	// 持久化格式的字段名必须保持兼容
	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Contains(t, raw[0], "question")
	assert.Contains(t, raw[0], "vector")
}

func TestParseVectorCacheMalformed(t *testing.T) {
	_, err := ParseVectorCache([]byte("{not json"))
	assert.Error(t, err)
}

func TestParseVectorCacheInconsistentDimensions(t *testing.T) {
	data := []byte(`[{"question":"a","vector":[1,2,3]},{"question":"b","vector":[1,2]}]`)

	_, err := ParseVectorCache(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimensionality")
}

func TestVectorCacheDimension(t *testing.T) {
	assert.Equal(t, 0, (&VectorCache{}).Dimension())

	cache := &VectorCache{Entries: []VectorEntry{
		{Question: "a", Vector: []float64{1, 2, 3, 4}},
	}}
	assert.Equal(t, 4, cache.Dimension())
}
