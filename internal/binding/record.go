// Package binding resolves what an element displays from its own static
// properties and the caller's substitution record.
package binding

import "sort"

// Record is the substitution record of one rendering pass. It is a private
// copy of the caller's map, so nothing downstream can mutate the request.
type Record struct {
	values map[string]string
}

// NewRecord copies data into a Record. A nil map yields an empty record.
func NewRecord(data map[string]string) Record {
	values := make(map[string]string, len(data))
	for k, v := range data {
		values[k] = v
	}
	return Record{values: values}
}

// Lookup returns the value stored under key. Keys are case-sensitive.
func (r Record) Lookup(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Get returns the value under key, or def when absent.
func (r Record) Get(key, def string) string {
	if v, ok := r.values[key]; ok {
		return v
	}
	return def
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.values)
}

// Keys returns the field names in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MissingFields returns the required names that data does not carry, in
// declaration order and without duplicates.
func MissingFields(required []string, data map[string]string) []string {
	var missing []string
	seen := make(map[string]struct{}, len(required))
	for _, name := range required {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := data[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
