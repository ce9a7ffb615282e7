package kvstore

import (
	"encoding/json"
	"strings"
)

// DecodeRecord normalizes a stored hash value into a typed record. Some
// store clients hand back the raw JSON text, others re-serialize an already
// deserialized object, which shows up here as a doubly-encoded JSON string.
// Both forms decode to the same record; domain code never branches on
// representation.
func DecodeRecord(raw string, out interface{}) error {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			s = inner
		}
	}
	return json.Unmarshal([]byte(s), out)
}

// EncodeRecord serializes a record to the store's native text representation.
func EncodeRecord(in interface{}) (string, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
