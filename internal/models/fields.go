package models

import (
	"encoding/json"
	"maps"
)

// Fields holds JSON members a document type doesn't model. They are written back verbatim.
type Fields map[string]json.RawMessage

// unknownFields returns the members of the JSON object data whose names aren't in known.
func unknownFields(data []byte, known ...string) (Fields, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// marshalWithFields marshals v (which must encode to an object) and merges extra into it.
//
// Modeled members win over extra members with the same name.
func marshalWithFields(v any, extra Fields) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := out[k]; !ok {
			out[k] = raw
		}
	}
	return json.Marshal(out)
}

// Clone returns a shallow copy. RawMessage values are never mutated in place so sharing them is safe.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	return maps.Clone(f)
}
