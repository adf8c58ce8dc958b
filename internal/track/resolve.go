package track

// Unknown is the placeholder rendered for dangling category references.
var Unknown = Category{ID: "unknown", Name: "Unknown", Color: "#ccc"}

// Resolve maps category ids to registry entries, preserving the ids'
// insertion order and dropping ids that no longer resolve. When nothing
// resolves it returns the Unknown placeholder so callers always have at
// least one category to render.
func Resolve(categories []Category, ids []string) []Category {
	byID := make(map[string]Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	var out []Category
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return []Category{Unknown}
	}
	return out
}
