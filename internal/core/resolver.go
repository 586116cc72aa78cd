package core

// ResolveIcon looks up the display icon for a category name in the
// kind-appropriate set. The first entry with an exactly equal name wins;
// an unknown name resolves to the empty string, never an error and never
// a fabricated icon. The catalog holds no cache of its own, so callers
// must resolve against the catalog most recently fetched from the
// backend.
func (c Catalog) ResolveIcon(name string, kind Kind) string {
	for _, entry := range c.set(kind) {
		if entry.Name == name {
			return entry.Icon
		}
	}
	return ""
}

// Names returns the category names for a kind in catalog order.
func (c Catalog) Names(kind Kind) []string {
	set := c.set(kind)
	names := make([]string, 0, len(set))
	for _, entry := range set {
		names = append(names, entry.Name)
	}
	return names
}

func (c Catalog) set(kind Kind) []Category {
	if kind == Income {
		return c.Incomes
	}
	return c.Expenses
}
