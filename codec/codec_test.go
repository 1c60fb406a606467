package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Clusters [][]uint32
	Noise    []uint32
}

func sample() payload {
	return payload{
		Clusters: [][]uint32{{0, 1, 2}, {5, 6}},
		Noise:    []uint32{3, 4},
	}
}

func roundtrip(t *testing.T, c Codec) {
	t.Helper()
	in := sample()
	data, err := c.Marshal(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestCodecs_Roundtrip(t *testing.T) {
	for _, c := range []Codec{JSON{}, Gob{}, Zstd(JSON{}), Zstd(Gob{}), LZ4(JSON{}), LZ4(Gob{})} {
		t.Run(c.Name(), func(t *testing.T) {
			roundtrip(t, c)
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "gob", "zstd+json", "zstd+gob", "lz4+json", "lz4+gob"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
	_, ok = ByName("zstd+msgpack")
	assert.False(t, ok)
}

func TestZstd_CorruptInput(t *testing.T) {
	var out payload
	err := Zstd(JSON{}).Unmarshal([]byte("not zstd"), &out)
	assert.Error(t, err)
}
