package types

import "sort"

// ParamBag accumulates implication parameters for one component.  Keys
// and values keep first-seen order and values are deduplicated, so the
// merged bag is deterministic across resolution passes.
type ParamBag struct {
	keys   []string
	values map[string][]string
}

func NewParamBag() *ParamBag {
	return &ParamBag{values: map[string][]string{}}
}

// Add unions the given values into the key's list and reports whether
// the bag changed.  The expander re-enqueues a target only on growth.
func (b *ParamBag) Add(key string, values ...string) bool {
	changed := false
	existing, ok := b.values[key]
	if !ok {
		b.keys = append(b.keys, key)
		changed = true
	}
	for _, value := range values {
		if containsString(existing, value) {
			continue
		}
		existing = append(existing, value)
		changed = true
	}
	b.values[key] = existing
	return changed
}

// Merge unions every entry of the given parameter map and reports
// whether anything changed.  Keys are visited in sorted order so the
// merge is deterministic regardless of map iteration.
func (b *ParamBag) Merge(params map[string]StringList) bool {
	changed := false
	for _, key := range sortedParamKeys(params) {
		if b.Add(key, params[key]...) {
			changed = true
		}
	}
	return changed
}

// Keys returns the keys in first-seen order.
func (b *ParamBag) Keys() []string {
	return append([]string(nil), b.keys...)
}

// Values returns the deduplicated values for a key in first-seen order.
func (b *ParamBag) Values(key string) []string {
	return append([]string(nil), b.values[key]...)
}

func (b *ParamBag) Len() int {
	return len(b.keys)
}

func sortedParamKeys(params map[string]StringList) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
