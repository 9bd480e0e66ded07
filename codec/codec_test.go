package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		got, ok := ByName(c.Name())
		require.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsAgree(t *testing.T) {
	layers := []benchLayer{
		{Name: "AdaptorNeighbourList", Args: map[string]any{"cutoff": 3.5, "consider_ghost_neighbours": true}},
		{Name: "AdaptorStrict", Args: map[string]any{"cutoff": 2.0}},
	}

	for _, enc := range []Codec{JSON{}, GoJSON{}} {
		for _, dec := range []Codec{JSON{}, GoJSON{}} {
			t.Run(enc.Name()+"/"+dec.Name(), func(t *testing.T) {
				var got []benchLayer
				require.NoError(t, dec.Unmarshal(MustMarshal(enc, layers), &got))
				assert.Equal(t, layers, got)
			})
		}
	}
}

func TestDecode(t *testing.T) {
	got, err := Decode[[]benchLayer](nil, []byte(`[{"name":"AdaptorKspace"}]`))
	require.NoError(t, err)
	assert.Equal(t, []benchLayer{{Name: "AdaptorKspace"}}, got)

	_, err = Decode[[]benchLayer](JSON{}, []byte(`{"name":`))
	assert.Error(t, err)

	assert.Equal(t, []string{"go-json", "json"}, Names())
}

func TestMustMarshal(t *testing.T) {
	assert.Equal(t, `{"a":1}`, string(MustMarshal(nil, map[string]int{"a": 1})))
	assert.Panics(t, func() { MustMarshal(JSON{}, func() {}) })
}
