package utils

import (
	"testing"

	"github.com/paulmach/orb"
)

// Roughly a 1km x 1km square near Aydın.
var testPolygon = orb.Polygon{orb.Ring{
	{27.840, 37.840},
	{27.851, 37.840},
	{27.851, 37.849},
	{27.840, 37.849},
	{27.840, 37.840},
}}

func TestParseBoundary(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			"bare polygon geometry",
			`{"type":"Polygon","coordinates":[[[27.84,37.84],[27.851,37.84],[27.851,37.849],[27.84,37.84]]]}`,
			false,
		},
		{
			"feature wrapper",
			`{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[27.84,37.84],[27.851,37.84],[27.851,37.849],[27.84,37.84]]]}}`,
			false,
		},
		{"point geometry rejected", `{"type":"Point","coordinates":[27.84,37.84]}`, true},
		{"not geojson", `{"hello":"world"}`, true},
		{
			"degenerate two-point ring",
			`{"type":"Polygon","coordinates":[[[27.84,37.84],[27.851,37.84],[27.84,37.84]]]}`,
			true,
		},
		{
			"latitude out of range",
			`{"type":"Polygon","coordinates":[[[27.84,97.84],[27.851,37.84],[27.851,37.849],[27.84,97.84]]]}`,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBoundary([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseBoundary error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBoundaryContains(t *testing.T) {
	if !BoundaryContains(testPolygon, 37.845, 27.845) {
		t.Error("center point should be inside")
	}
	if BoundaryContains(testPolygon, 37.860, 27.845) {
		t.Error("point north of the plot should be outside")
	}
}

func TestAreaDecares(t *testing.T) {
	area := AreaDecares(testPolygon)
	// ~1km x ~1km is on the order of 1000 decares; just sanity-check the
	// magnitude and sign.
	if area < 500 || area > 2000 {
		t.Errorf("AreaDecares = %f, expected a value near 1000", area)
	}
}
