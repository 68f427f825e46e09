package harvest

import (
	"reflect"
	"testing"
	"time"
)

var seqDate = time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC)

func names(ns ...int) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = FormatName(seqDate, n)
	}
	return out
}

func TestFormatName(t *testing.T) {
	if got := FormatName(seqDate, 3); got != "14.08.2026 - 3. Araba" {
		t.Errorf("FormatName = %q", got)
	}
}

func TestUsedNumbers(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []int
	}{
		{"empty", nil, []int{}},
		{"plain sequence", names(1, 2, 3), []int{1, 2, 3}},
		{"unsorted with duplicates", names(4, 1, 4, 2), []int{1, 2, 4}},
		{"other day ignored", []string{"13.08.2026 - 1. Araba"}, []int{}},
		{"malformed middle ignored", []string{"14.08.2026 - x. Araba"}, []int{}},
		{"zero and negative ignored", []string{
			"14.08.2026 - 0. Araba",
			"14.08.2026 - -2. Araba",
			"14.08.2026 - 2. Araba",
		}, []int{2}},
		{"renamed entries ignored", []string{"morning pick", "", "14.08.2026 - 7. Araba"}, []int{7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usedNumbers(seqDate, tt.names)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("usedNumbers(%v) = %v, want %v", tt.names, got, tt.want)
			}
		})
	}
}

func TestNextNumber(t *testing.T) {
	tests := []struct {
		name string
		used []int
		want int
	}{
		{"empty day starts at one", []int{}, 1},
		{"no gaps appends", []int{1, 2, 3}, 4},
		{"fills first gap not max+1", []int{1, 2, 4}, 3},
		{"gap at start", []int{2, 3}, 1},
		{"single high number", []int{9}, 1},
		{"long run", []int{1, 2, 3, 4, 5, 6, 7}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextNumber(tt.used); got != tt.want {
				t.Errorf("nextNumber(%v) = %d, want %d", tt.used, got, tt.want)
			}
		})
	}
}

// Deleting truck #1 of a day must hand the number back: the next entry is
// "1. Araba" again, not "3. Araba".
func TestGapFillAfterDelete(t *testing.T) {
	remaining := names(2) // entry 1 was deleted
	if got := nextNumber(usedNumbers(seqDate, remaining)); got != 1 {
		t.Errorf("next after deleting #1 = %d, want 1", got)
	}
}

// Re-saving an entry on its own date must not shift its number. The scan
// excludes the entry itself, so its old number reads as free and the
// first-gap walk lands back on it.
func TestExcludeSelfKeepsOwnNumber(t *testing.T) {
	othersOnly := names(1, 3) // the edited entry holds 2 and is excluded
	if got := nextNumber(usedNumbers(seqDate, othersOnly)); got != 2 {
		t.Errorf("recomputed own number = %d, want 2", got)
	}
}

func TestDayWindow(t *testing.T) {
	start, end := dayWindow(time.Date(2026, 8, 14, 23, 45, 0, 0, time.UTC))
	if !start.Equal(time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}
}
