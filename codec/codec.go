// Package codec centralizes the encoding of layer specifications and
// snapshot payloads.
//
// Snapshots store the codec name in their header, so changing codecs never
// breaks reading existing files as long as the old codec is still
// known to ByName.
package codec

import (
	"fmt"
	"slices"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used for new snapshots and for layer specifications.
var Default Codec = GoJSON{}

var builtin = []Codec{GoJSON{}, JSON{}}

// ByName returns a built-in codec by the name stored in snapshot headers.
func ByName(name string) (Codec, bool) {
	i := slices.IndexFunc(builtin, func(c Codec) bool { return c.Name() == name })
	if i < 0 {
		return nil, false
	}
	return builtin[i], true
}

// Names lists the built-in codecs.
func Names() []string {
	names := make([]string, len(builtin))
	for i, c := range builtin {
		names[i] = c.Name()
	}
	return names
}

// Decode unmarshals data into a new T. A nil codec uses Default.
func Decode[T any](c Codec, data []byte) (T, error) {
	if c == nil {
		c = Default
	}
	var v T
	err := c.Unmarshal(data, &v)
	return v, err
}

// MustMarshal panics if v cannot be encoded. Meant for tests and
// benchmarks. A nil codec uses Default.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
