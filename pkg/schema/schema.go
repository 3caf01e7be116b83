package schema

// Values maps field names to their current values.
type Values map[string]any

// Clone returns a shallow copy so callers can hand values to transforms
// without exposing the live map.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Violations maps violated field names to a human-readable message. An empty
// map means the values are acceptable.
type Violations map[string]string

// Schema validates a set of field values. Implementations must be pure:
// no I/O, no mutation of the input.
type Schema interface {
	Validate(values Values) Violations
}
