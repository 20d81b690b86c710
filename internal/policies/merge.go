// Package policies holds the named merge and selection rules the data
// model references.  Call sites apply a rule by name instead of
// inferring one per field.
package policies

// UnionLists merges any number of string lists into one, keeping
// first-seen order and dropping duplicates.  Used for service ports,
// volumes, and network aliases.
func UnionLists(lists ...[]string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, list := range lists {
		for _, item := range list {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// OverrideMap overlays maps left to right: a later map wins key-for-key.
// Used for service env, where the variant overrides the common block.
func OverrideMap(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for key, value := range m {
			out[key] = value
		}
	}
	return out
}

// Coalesce returns the first non-empty value.  Used for container
// names: variant, then common, then the component name.
func Coalesce(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
