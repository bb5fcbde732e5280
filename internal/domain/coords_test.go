package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestExtractCoordinates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Coordinates
	}{
		{"bracketed pair", "[13.75,100.50]", Coordinates{floatPtr(13.75), floatPtr(100.50)}},
		{"bracketed pair with spaces", "[13.7563, 100.5018]", Coordinates{floatPtr(13.7563), floatPtr(100.5018)}},
		{"no brackets", "13.75,100.5", Coordinates{floatPtr(13.75), floatPtr(100.5)}},
		{"integer coordinates", "[13,100]", Coordinates{floatPtr(13), floatPtr(100)}},
		{"empty string", "", Coordinates{nil, nil}},
		{"brackets only", "[]", Coordinates{nil, nil}},
		{"single token", "[13.75]", Coordinates{floatPtr(13.75), nil}},
		{"latitude only before comma", "13.75,", Coordinates{floatPtr(13.75), nil}},
		{"longitude side not numeric", "[13.75, none]", Coordinates{floatPtr(13.75), nil}},
		{"garbage", "not coordinates", Coordinates{nil, nil}},
		{"surrounding noise", "lat: 13.75, lon: 100.5 (approx)", Coordinates{floatPtr(13.75), floatPtr(100.5)}},
		{"trailing comma garbage", "[13.7,100.5,extra]", Coordinates{floatPtr(13.7), floatPtr(100.5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCoordinates(tt.raw)

			if tt.want.Latitude == nil {
				assert.Nil(t, got.Latitude)
			} else {
				require.NotNil(t, got.Latitude)
				assert.Equal(t, *tt.want.Latitude, *got.Latitude)
			}
			if tt.want.Longitude == nil {
				assert.Nil(t, got.Longitude)
			} else {
				require.NotNil(t, got.Longitude)
				assert.Equal(t, *tt.want.Longitude, *got.Longitude)
			}
		})
	}
}

// The first-numeric-token policy ignores sign markers: "-13.75" extracts as
// 13.75. This mirrors the upstream export, which never carries signed
// values; the case is pinned here so the limitation stays deliberate.
func TestExtractCoordinates_SignMarkersIgnored(t *testing.T) {
	got := ExtractCoordinates("[-13.75, -100.5]")

	require.NotNil(t, got.Latitude)
	require.NotNil(t, got.Longitude)
	assert.Equal(t, 13.75, *got.Latitude)
	assert.Equal(t, 100.5, *got.Longitude)
}

// A second decimal point ends the token: "13.7.5" extracts as 13.7.
func TestExtractCoordinates_MultipleDecimalPoints(t *testing.T) {
	got := ExtractCoordinates("[13.7.5, 100.5]")

	require.NotNil(t, got.Latitude)
	assert.Equal(t, 13.7, *got.Latitude)
}
