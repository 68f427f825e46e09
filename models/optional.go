package models

import "encoding/json"

// Optional tracks JSON field presence for partial updates. A patch must
// distinguish "field omitted, leave it alone" from "field explicitly null,
// clear it"; a plain pointer collapses both into nil.
//
//	var p struct{ Note Optional[*string] }
//	{}              -> p.Note.Set == false
//	{"note":null}   -> p.Note.Set == true, p.Note.Value == nil
//	{"note":"x"}    -> p.Note.Set == true, *p.Note.Value == "x"
type Optional[T any] struct {
	Set   bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Some is a convenience constructor, mainly for tests.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}
