package journal

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// FieldValue is a sealed interface over the value variants an entry
// field may carry: free text, a number, a boolean, or a list of strings.
// Only Text, Number, Bool, and List implement it.
//
// Value-kind correctness against the matching definition's declared kind
// is deliberately not checked here; the core stores untyped values and
// defers type checking to an external validator.
type FieldValue interface {
	fieldValue() // sealed
}

// Text is a free-text field value.
type Text string

func (Text) fieldValue() {}

// Number is a numeric field value.
type Number float64

func (Number) fieldValue() {}

// Bool is a boolean field value.
type Bool bool

func (Bool) fieldValue() {}

// List is a string-list field value (multi-choice selections).
type List []string

func (List) fieldValue() {}

// Fields is the open-ended bag of additional key to value pairs on an
// entry. Keys are expected, but not required, to match a definition's
// standardized id or label.
type Fields map[string]FieldValue

// SortedKeys returns the field keys in sorted order for deterministic
// iteration.
func (f Fields) SortedKeys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the field bag.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		if l, ok := v.(List); ok {
			cp := make(List, len(l))
			copy(cp, l)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

// UnmarshalJSON decodes a JSON object into the four field variants.
// Nested objects and nulls are rejected; the field bag is flat.
func (f *Fields) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = make(Fields, len(raw))
	for k, v := range raw {
		val, err := unmarshalFieldValue(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		(*f)[k] = val
	}
	return nil
}

// UnmarshalYAML decodes a YAML mapping into the four field variants, so
// transaction and scenario files can spell field bags naturally.
func (f *Fields) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*f = make(Fields, len(raw))
	for k, v := range raw {
		fv, err := coerceFieldValue(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		(*f)[k] = fv
	}
	return nil
}

// coerceFieldValue converts a decoded YAML scalar or sequence into a
// FieldValue.
func coerceFieldValue(v any) (FieldValue, error) {
	switch val := v.(type) {
	case string:
		return Text(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Number(val), nil
	case int64:
		return Number(val), nil
	case float64:
		return Number(val), nil
	case []any:
		l := make(List, len(val))
		for i, elem := range val {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("list element %d: want string, got %T", i, elem)
			}
			l[i] = s
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unsupported field value type %T", v)
	}
}

// unmarshalFieldValue dispatches on the leading byte of the JSON value.
func unmarshalFieldValue(data []byte) (FieldValue, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return Text(s), nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return Bool(b), nil

	case '[':
		var l []string
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, err
		}
		return List(l), nil

	case '{':
		return nil, fmt.Errorf("nested objects are not valid field values")

	case 'n':
		return nil, fmt.Errorf("null is not a valid field value")

	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		return Number(n), nil
	}
}
