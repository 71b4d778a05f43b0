package impact

// LookupState reports why a path walk stopped, so tests can distinguish an
// absent key from a value of the wrong shape.
type LookupState int

const (
	// LookupPresent means the full path resolved to a value.
	LookupPresent LookupState = iota
	// LookupMissing means some segment was not found.
	LookupMissing
	// LookupWrongType means a segment existed but the value at it was not a
	// mapping and could not be descended into.
	LookupWrongType
)

// LookupResult is the outcome of walking a key path through a decoded JSON
// structure.
type LookupResult struct {
	Value any
	State LookupState
}

// lookup walks path through nested map[string]any values. It never panics:
// any absent key or non-mapping intermediate value terminates the walk with
// the corresponding state.
func lookup(doc any, path ...string) LookupResult {
	cur := doc
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return LookupResult{State: LookupWrongType}
		}
		next, ok := m[key]
		if !ok {
			return LookupResult{State: LookupMissing}
		}
		cur = next
	}
	return LookupResult{Value: cur, State: LookupPresent}
}

// lookupString resolves path to a string, or def on any failure.
func lookupString(doc any, def string, path ...string) string {
	res := lookup(doc, path...)
	if res.State != LookupPresent {
		return def
	}
	s, ok := res.Value.(string)
	if !ok {
		return def
	}
	return s
}

// lookupInt resolves path to an int, or def on any failure. JSON numbers
// decode as float64, so both forms are accepted.
func lookupInt(doc any, def int, path ...string) int {
	res := lookup(doc, path...)
	if res.State != LookupPresent {
		return def
	}
	switch v := res.Value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// lookupSlice resolves path to a []any, or nil on any failure.
func lookupSlice(doc any, path ...string) []any {
	res := lookup(doc, path...)
	if res.State != LookupPresent {
		return nil
	}
	s, ok := res.Value.([]any)
	if !ok {
		return nil
	}
	return s
}
