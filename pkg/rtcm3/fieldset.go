package rtcm3

import (
	"fmt"
)

// FieldSet offers typed access to the fields of a decoded message.
type FieldSet struct {
	data map[string]any
}

// FieldSet returns a FieldSet wrapper for the result's fields.
func (r Result) FieldSet() FieldSet {
	return FieldSet{data: r.Fields()}
}

// Map exposes the underlying map.
func (fs FieldSet) Map() map[string]any {
	return fs.data
}

// Has reports whether the field is present.
func (fs FieldSet) Has(key string) bool {
	_, ok := fs.data[key]
	return ok
}

func (fs FieldSet) raw(key string) (any, error) {
	v, ok := fs.data[key]
	if !ok {
		return nil, fmt.Errorf("field %q missing", key)
	}
	return v, nil
}

// Int returns an integer field.
func (fs FieldSet) Int(key string) (int, error) {
	v, err := fs.raw(key)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("field %q has type %T, not int", key, v)
	}
	return n, nil
}

// Float returns a numeric field as float64.
func (fs FieldSet) Float(key string) (float64, error) {
	v, err := fs.raw(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("field %q has type %T, not numeric", key, v)
	}
}

// Bool returns a flag field.
func (fs FieldSet) Bool(key string) (bool, error) {
	v, err := fs.raw(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("field %q has type %T, not bool", key, v)
	}
	return b, nil
}

// Ints returns a list field such as satellite or signal IDs.
func (fs FieldSet) Ints(key string) ([]int, error) {
	v, err := fs.raw(key)
	if err != nil {
		return nil, err
	}
	ids, ok := v.([]int)
	if !ok {
		return nil, fmt.Errorf("field %q has type %T, not []int", key, v)
	}
	return ids, nil
}

// String returns the field formatted as a string.
func (fs FieldSet) String(key string) (string, error) {
	v, err := fs.raw(key)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", v), nil
}
