package sfcore

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DecodeMode is a client-wide switch, chosen at construction, for how decoded
// JSON trees are presented to the caller. Both modes carry the same tree.
type DecodeMode int

const (
	// DecodeAny presents responses as plain map[string]interface{} /
	// []interface{} trees straight out of the JSON decoder.
	DecodeAny DecodeMode = iota

	// DecodeRecord wraps object trees in Record, which adds typed field
	// accessors on top of the same underlying map.
	DecodeRecord
)

// Record is a decoded JSON object with typed field access.
type Record map[string]interface{}

// String returns the named field as a string, or "" when absent or not a string.
func (r Record) String(key string) string {
	v, _ := r[key].(string)
	return v
}

// Bool returns the named field as a bool, or false when absent or not a bool.
func (r Record) Bool(key string) bool {
	v, _ := r[key].(bool)
	return v
}

// Float returns the named field as a float64, JSON's native number type.
func (r Record) Float(key string) float64 {
	v, _ := r[key].(float64)
	return v
}

// Int returns the named field truncated to an int.
func (r Record) Int(key string) int {
	return int(r.Float(key))
}

// Record returns the named field as a nested Record, or nil.
func (r Record) Record(key string) Record {
	v, _ := r[key].(map[string]interface{})
	return Record(v)
}

// Records returns the named field as a slice of Records, skipping elements
// that are not objects.
func (r Record) Records(key string) []Record {
	items, _ := r[key].([]interface{})
	if items == nil {
		return nil
	}
	records := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			records = append(records, Record(m))
		}
	}
	return records
}

// Decode unmarshals a classified response body according to mode.
func Decode(mode DecodeMode, body []byte) (interface{}, error) {
	var tree interface{}
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	if mode != DecodeRecord {
		return tree, nil
	}

	switch v := tree.(type) {
	case map[string]interface{}:
		return Record(v), nil
	case []interface{}:
		records := make([]Record, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				records = append(records, Record(m))
			}
		}
		if len(records) == len(v) {
			return records, nil
		}
		return v, nil
	default:
		return tree, nil
	}
}

// Result is the per-call outcome handed back to the caller: the decoded tree
// plus the response diagnostics that would otherwise live in hidden
// last-response state.
type Result struct {
	Data       interface{}
	StatusCode int
	Header     http.Header
	Raw        []byte
}

// Record returns the decoded tree as a Record when it is an object, plus a
// flag saying whether the conversion applied.
func (r *Result) Record() (Record, bool) {
	switch v := r.Data.(type) {
	case Record:
		return v, true
	case map[string]interface{}:
		return Record(v), true
	default:
		return nil, false
	}
}
