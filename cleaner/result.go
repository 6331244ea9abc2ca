package cleaner

import "encoding/json"

// Result is either Structured or Raw. Callers switch on the concrete type.
type Result interface {
	isResult()
}

// Structured holds a decoded JSON object or array.
type Structured struct {
	Value any
}

// Raw holds cleaned model text that did not decode into an object or array.
type Raw struct {
	Text string
}

func (Structured) isResult() {}
func (Raw) isResult()        {}

// Object returns the value as a JSON object when it is one.
func (s Structured) Object() (map[string]any, bool) {
	m, ok := s.Value.(map[string]any)
	return m, ok
}

// Decode cleans raw and attempts a strict parse. Scalars count as Raw: only
// objects and arrays are treated as structured output.
func Decode(raw string) Result {
	cleaned := Clean(raw)

	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return Raw{Text: cleaned}
	}

	switch v.(type) {
	case map[string]any, []any:
		return Structured{Value: v}
	default:
		return Raw{Text: cleaned}
	}
}

// Value returns what a JSON response should carry for r and whether it was
// structured.
func Value(r Result) (any, bool) {
	switch r := r.(type) {
	case Structured:
		return r.Value, true
	case Raw:
		return r.Text, false
	default:
		return nil, false
	}
}
