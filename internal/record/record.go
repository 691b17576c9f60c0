// Package record holds the schema-less rows produced by the scraper: ordered
// string key/value pairs whose key set differs between job postings.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Record is an insertion-ordered string map. Overwriting a key keeps its
// original position.
type Record struct {
	keys   []string
	values map[string]string
}

func New() *Record {
	return &Record{values: make(map[string]string)}
}

// FromPairs pairs adjacent items as key, value, key, value. A trailing
// unpaired item is dropped; a nil slice gives an empty record.
func FromPairs(items []string) *Record {
	r := New()
	for i := 0; i+1 < len(items); i += 2 {
		r.Set(items[i], items[i+1])
	}
	return r
}

func (r *Record) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value for key, or "" when absent.
func (r *Record) Value(key string) string {
	return r.values[key]
}

// ValueOr returns the value for key, or def when absent.
func (r *Record) ValueOr(key, def string) string {
	if v, ok := r.values[key]; ok {
		return v
	}
	return def
}

func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Record) Len() int {
	return len(r.keys)
}

// Merge returns a new record with r's pairs followed by other's. On key
// collision other's value wins.
func (r *Record) Merge(other *Record) *Record {
	out := New()
	for _, k := range r.keys {
		out.Set(k, r.values[k])
	}
	if other == nil {
		return out
	}
	for _, k := range other.keys {
		out.Set(k, other.values[k])
	}
	return out
}

// MarshalJSON renders the record as a JSON object with keys in record order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) String() string {
	parts := make([]string, 0, len(r.keys))
	for _, k := range r.keys {
		parts = append(parts, fmt.Sprintf("%q: %q", k, r.values[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Columns returns every key seen across records, in order of first appearance.
func Columns(records []*Record) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, r := range records {
		for _, k := range r.keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	return cols
}
