package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTF8Passthrough(t *testing.T) {
	data := []byte("顯示銷售")
	for _, name := range []string{"", "utf-8", "UTF-8", "utf8"} {
		got, err := Decode(data, name)
		require.NoError(t, err)
		assert.Equal(t, data, got)

		got, err = Encode(data, name)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := []byte("顯示銷售報表")

	encoded, err := Encode(original, "big5")
	require.NoError(t, err)
	assert.NotEqual(t, original, encoded)

	decoded, err := Decode(encoded, "big5")
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestUnknownEncoding(t *testing.T) {
	_, err := Decode([]byte("data"), "not-an-encoding")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported text encoding")
}
