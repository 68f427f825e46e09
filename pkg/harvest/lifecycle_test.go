package harvest

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"bahcem.in/hasat/models"
)

func validEntry() *models.HarvestEntry {
	return &models.HarvestEntry{
		GardenID:   uuid.New(),
		TraderName: "Mehmet Ticaret",
		Date:       time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC),
		PricePerKg: d("10"),
		Grade1Kg:   dp("100"),
		Grade2Kg:   dp("0"),
	}
}

func TestSubmitViolationsCleanEntry(t *testing.T) {
	if v := submitViolations(validEntry(), 1); len(v) != 0 {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestSubmitViolationsAccumulate(t *testing.T) {
	// Missing price, missing slip photo, blank trader: the gate must report
	// all three at once, not stop at the first.
	e := validEntry()
	e.PricePerKg = d("0")
	e.TraderName = "   "

	violations := submitViolations(e, 0)
	if len(violations) != 3 {
		t.Fatalf("expected exactly 3 violations, got %d: %v", len(violations), violations)
	}
	fields := map[string]bool{}
	for _, v := range violations {
		if v.Message == "" {
			t.Errorf("violation %q has empty message", v.Field)
		}
		fields[v.Field] = true
	}
	for _, want := range []string{"pricePerKg", "traderName", "photos"} {
		if !fields[want] {
			t.Errorf("missing violation for field %q in %v", want, fields)
		}
	}
}

func TestSubmitViolationsAbsentVsZeroGrades(t *testing.T) {
	// Explicit zero satisfies the grade rules; absence does not.
	e := validEntry()
	e.Grade1Kg = nil
	violations := submitViolations(e, 1)
	if len(violations) != 1 || violations[0].Field != "grade1Kg" {
		t.Fatalf("expected single grade1Kg violation, got %v", violations)
	}

	e = validEntry()
	e.Grade1Kg = dp("0")
	e.Grade2Kg = dp("0")
	if v := submitViolations(e, 1); len(v) != 0 {
		t.Fatalf("explicit zero grades must pass, got %v", v)
	}
}

func TestSubmitViolationsThirdGradeRule(t *testing.T) {
	tests := []struct {
		name       string
		thirdKg    string // "" = absent
		thirdPrice string // "" = absent
		wantFail   bool
	}{
		{"no third grade at all", "", "", false},
		{"third weight zero needs no price", "0", "", false},
		{"third weight without price", "30", "", true},
		{"third weight with zero price is fine", "30", "0", false},
		{"third weight with price", "30", "2.5", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			if tt.thirdKg != "" {
				e.ThirdKg = dp(tt.thirdKg)
			}
			if tt.thirdPrice != "" {
				e.ThirdPricePerKg = dp(tt.thirdPrice)
			}
			violations := submitViolations(e, 1)
			failed := false
			for _, v := range violations {
				if v.Field == "thirdPricePerKg" {
					failed = true
				}
			}
			if failed != tt.wantFail {
				t.Errorf("thirdPricePerKg violation = %v, want %v (%v)", failed, tt.wantFail, violations)
			}
		})
	}
}

// update, delete, submit and photo removal all pass through the same gate
// before touching a row: once submitted, every one of them must refuse with
// an invalid-state error regardless of caller.
func TestSubmittedEntryIsTerminal(t *testing.T) {
	e := validEntry()
	e.Status = models.HarvestSubmitted
	if err := ensureDraft(e); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}

	e.Status = models.HarvestDraft
	if err := ensureDraft(e); err != nil {
		t.Fatalf("draft must pass the gate, got %v", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Violations: []Violation{
		{Field: "date", Message: "date is required"},
		{Field: "photos", Message: "at least one trader slip photo is required"},
	}}
	var ve *ValidationError
	if !errors.As(error(err), &ve) {
		t.Fatal("errors.As failed for ValidationError")
	}
	if len(ve.Violations) != 2 {
		t.Fatalf("violations lost in transit: %v", ve.Violations)
	}
}

func TestCreateInputValidate(t *testing.T) {
	base := CreateInput{GardenID: uuid.New(), Date: "2026-08-14", TraderName: "Acme"}

	t.Run("normalizes to noon UTC", func(t *testing.T) {
		date, err := base.validate()
		if err != nil {
			t.Fatal(err)
		}
		want := time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC)
		if !date.Equal(want) {
			t.Errorf("date = %v, want %v", date, want)
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		in := base
		in.Date = "14.08.2026"
		if _, err := in.validate(); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("err = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		in := base
		in.Grade1Kg = dp("-1")
		if _, err := in.validate(); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("err = %v, want ErrInvalidArgument", err)
		}
	})
}

// A patch must distinguish "field omitted" from "field explicitly null":
// closureNote and grade2Kg both rely on that when clients clear values.
func TestEntryPatchPresence(t *testing.T) {
	var patch EntryPatch
	raw := `{"grade2Kg": null, "pricePerKg": 12.5, "closureNote": "rain stopped picking"}`
	if err := json.Unmarshal([]byte(raw), &patch); err != nil {
		t.Fatal(err)
	}

	if !patch.Grade2Kg.Set || patch.Grade2Kg.Value != nil {
		t.Errorf("grade2Kg: want explicit null, got Set=%v Value=%v", patch.Grade2Kg.Set, patch.Grade2Kg.Value)
	}
	if patch.Grade1Kg.Set {
		t.Error("grade1Kg was omitted but decoded as present")
	}
	if !patch.PricePerKg.Set || !patch.PricePerKg.Value.Equal(d("12.5")) {
		t.Errorf("pricePerKg = %+v", patch.PricePerKg)
	}
	if !patch.ClosureNote.Set || patch.ClosureNote.Value == nil || *patch.ClosureNote.Value != "rain stopped picking" {
		t.Errorf("closureNote = %+v", patch.ClosureNote)
	}
}

func TestApplyOpt(t *testing.T) {
	note := "old"
	dst := &note
	applyOpt(&dst, models.Optional[*string]{}) // omitted: unchanged
	if dst == nil || *dst != "old" {
		t.Errorf("omitted patch changed value: %v", dst)
	}
	applyOpt(&dst, models.Some[*string](nil)) // explicit null: cleared
	if dst != nil {
		t.Errorf("explicit null did not clear value: %v", dst)
	}
}
