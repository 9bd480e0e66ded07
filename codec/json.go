package codec

import "encoding/json"

// JSON is the standard-library codec. It writes the same documents as
// GoJSON; snapshots written with it stay readable.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns "json".
func (JSON) Name() string { return "json" }
