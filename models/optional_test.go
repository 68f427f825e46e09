package models

import (
	"encoding/json"
	"testing"
)

func TestOptionalPresence(t *testing.T) {
	type payload struct {
		Note  Optional[*string] `json:"note"`
		Count Optional[int]     `json:"count"`
	}

	tests := []struct {
		name      string
		raw       string
		noteSet   bool
		noteNil   bool
		noteValue string
	}{
		{"omitted", `{}`, false, true, ""},
		{"explicit null", `{"note": null}`, true, true, ""},
		{"value", `{"note": "dry week"}`, true, false, "dry week"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.raw), &p); err != nil {
				t.Fatal(err)
			}
			if p.Note.Set != tt.noteSet {
				t.Errorf("Set = %v, want %v", p.Note.Set, tt.noteSet)
			}
			if (p.Note.Value == nil) != tt.noteNil {
				t.Errorf("Value nil = %v, want %v", p.Note.Value == nil, tt.noteNil)
			}
			if !tt.noteNil && *p.Note.Value != tt.noteValue {
				t.Errorf("Value = %q, want %q", *p.Note.Value, tt.noteValue)
			}
			if p.Count.Set {
				t.Error("count was omitted but decoded as present")
			}
		})
	}
}

func TestOptionalScalar(t *testing.T) {
	var o Optional[int]
	if err := json.Unmarshal([]byte("7"), &o); err != nil {
		t.Fatal(err)
	}
	if !o.Set || o.Value != 7 {
		t.Errorf("got %+v", o)
	}
}
