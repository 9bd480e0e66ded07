package codec

import (
	"testing"
)

type benchLayer struct {
	Name string         `json:"name"`
	Args map[string]any `json:"initialization_arguments"`
}

type benchState struct {
	NCenters  int       `json:"n_centers"`
	Positions []float64 `json:"positions"`
	Counts    []int     `json:"counts"`
	Tags      []int     `json:"tags"`
}

func newBenchState() benchState {
	st := benchState{NCenters: 256}
	for i := range 4 * 256 {
		st.Positions = append(st.Positions, float64(i)*0.173)
	}
	for i := range 4 * 256 {
		st.Counts = append(st.Counts, 42)
		for j := range 42 {
			st.Tags = append(st.Tags, (i+j)%1024)
		}
	}
	return st
}

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for b.Loop() {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkCodecUnmarshal[T any](b *testing.B, c Codec, data []byte, dst *T) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var v T
	b.ResetTimer()
	for b.Loop() {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
	if dst != nil {
		*dst = v
	}
}

func BenchmarkCodec_Marshal_Layers(b *testing.B) {
	layers := []benchLayer{
		{Name: "AdaptorNeighbourList", Args: map[string]any{"cutoff": 3.5, "consider_ghost_neighbours": false}},
		{Name: "AdaptorCenterContribution", Args: map[string]any{}},
		{Name: "AdaptorStrict", Args: map[string]any{"cutoff": 3.5}},
	}

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, layers) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, layers) })
}

func BenchmarkCodec_Marshal_State(b *testing.B) {
	st := newBenchState()

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, st) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, st) })
}

func BenchmarkCodec_Unmarshal_State(b *testing.B) {
	jsonData := MustMarshal(JSON{}, newBenchState())

	b.Run("stdlib", func(b *testing.B) {
		var sink benchState
		benchmarkCodecUnmarshal(b, JSON{}, jsonData, &sink)
		_ = sink
	})
	b.Run("go-json", func(b *testing.B) {
		var sink benchState
		benchmarkCodecUnmarshal(b, GoJSON{}, jsonData, &sink)
		_ = sink
	})
}
