package category

// Category classifies a domain for aggregation and focus enforcement.
type Category string

const (
	Work         Category = "work"
	Neutral      Category = "neutral"
	Unproductive Category = "unproductive"
)

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	switch c {
	case Work, Neutral, Unproductive:
		return true
	}
	return false
}

// Next returns the category that follows c in the settings-page cycle order
// (neutral -> work -> unproductive -> neutral).
func (c Category) Next() Category {
	switch c {
	case Neutral:
		return Work
	case Work:
		return Unproductive
	default:
		return Neutral
	}
}

// Map assigns categories to domains. A domain absent from the map is neutral.
type Map map[string]Category

// Get returns the category for domain, defaulting to Neutral.
func (m Map) Get(domain string) Category {
	if c, ok := m[domain]; ok && c.Valid() {
		return c
	}
	return Neutral
}

// Clone returns a shallow copy, never nil.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
