package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecimalCell(t *testing.T) {
	if got := decimalCell(nil); got != "" {
		t.Errorf("nil = %q, want empty cell", got)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"1234.5678", "1234.5678"},
		// 0.1 has no exact float64 form; the cell must carry the exact value.
		{"0.1", "0.1"},
		{"0", "0"},
		{"-5.25", "-5.25"},
	}
	for _, tt := range tests {
		v := decimal.RequireFromString(tt.in)
		if got := decimalCell(&v); got != tt.want {
			t.Errorf("decimalCell(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
