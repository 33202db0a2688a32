package digihub

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMaidenheadLocator(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
		want string
	}{
		{"Newington, CT", 41.714649, -72.728485, "FN31pr"},
		{"ll2utm man page", 42.662139, -71.365553, "FN42hp"},
		{"Sydney", -33.8688, 151.2093, "QF56od"},
		{"null island", 0, 0, "JJ00aa"},
		{"south west corner", -90, -180, "AA00aa"},
		{"north east corner", 90, 180, "SS00aa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaidenheadLocator(tt.lat, tt.lon))
		})
	}
}

// TestGridSquareEdgeCases checks locator to latitude / longitude.
func TestGridSquareEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		grid      string
		expectErr bool
		minLat    float64
		maxLat    float64
		minLon    float64
		maxLon    float64
	}{
		{
			name:   "2 character grid",
			grid:   "BL",
			minLat: 15.0,
			maxLat: 35.0,
			minLon: -160.0,
			maxLon: -140.0,
		},
		{
			name:   "4 character grid",
			grid:   "BL11",
			minLat: 20.49,
			maxLat: 21.51,
			minLon: -157.01,
			maxLon: -156.99,
		},
		{
			name:   "6 character grid",
			grid:   "BL11BH",
			minLat: 21.31,
			maxLat: 21.32,
			minLon: -157.88,
			maxLon: -157.87,
		},
		{
			name:   "lowercase should work",
			grid:   "bl11bh",
			minLat: 21.31,
			maxLat: 21.32,
			minLon: -157.88,
			maxLon: -157.87,
		},
		{
			name:   "12 character grid",
			grid:   "FN31PR21AA00",
			minLat: 41.70,
			maxLat: 41.73,
			minLon: -72.74,
			maxLon: -72.70,
		},
		{ //nolint: exhaustruct
			name:      "odd number of characters fails",
			grid:      "BL1",
			expectErr: true,
		},
		{ //nolint: exhaustruct
			name:      "empty string fails",
			grid:      "",
			expectErr: true,
		},
		{ //nolint: exhaustruct
			name:      "too many pairs fails",
			grid:      "BL11BH16OO66XX",
			expectErr: true,
		},
		{ //nolint: exhaustruct
			name:      "invalid first character",
			grid:      "ZZ11",
			expectErr: true,
		},
		{ //nolint: exhaustruct
			name:      "invalid second pair character",
			grid:      "BLA1",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, err := LatLonFromLocator(tt.grid)

			if tt.expectErr {
				assert.Error(t, err, "should return error for invalid input")
			} else {
				require.NoError(t, err, "should not return error for valid input")
				assert.GreaterOrEqual(t, lat, tt.minLat, "latitude should be >= min")
				assert.LessOrEqual(t, lat, tt.maxLat, "latitude should be <= max")
				assert.GreaterOrEqual(t, lon, tt.minLon, "longitude should be >= min")
				assert.LessOrEqual(t, lon, tt.maxLon, "longitude should be <= max")
			}
		})
	}
}

// The centre of a square is inside that square.
func TestLocatorRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var lat = rapid.Float64Range(-89.99, 89.99).Draw(t, "lat")
		var lon = rapid.Float64Range(-179.99, 179.99).Draw(t, "lon")

		var locator = MaidenheadLocator(lat, lon)

		var clat, clon, err = LatLonFromLocator(locator)
		if err != nil {
			t.Fatalf("%s: %s", locator, err)
		}

		if again := MaidenheadLocator(clat, clon); !strings.EqualFold(again, locator) {
			t.Fatalf("%.6f,%.6f -> %s -> %.6f,%.6f -> %s", lat, lon, locator, clat, clon, again)
		}
	})
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon string
		want     error
	}{
		{"41.714649", "-72.728485", nil},
		{"90", "180", nil},
		{"-90", "-180", nil},
		{" 12.5 ", "7", nil},
		{"north", "0", ErrLatitudeNotNumber},
		{"", "0", ErrLatitudeNotNumber},
		{"NaN", "0", ErrLatitudeNotNumber},
		{"0", "east", ErrLongitudeNotNumber},
		{"0", "+Inf", ErrLongitudeNotNumber},
		{"90.000001", "0", ErrLatitudeRange},
		{"-91", "0", ErrLatitudeRange},
		{"0", "180.5", ErrLongitudeRange},
		{"0", "-181", ErrLongitudeRange},
		{"100", "east", ErrLongitudeNotNumber},
	}

	for _, tt := range tests {
		t.Run(tt.lat+","+tt.lon, func(t *testing.T) {
			var _, _, err = ParseCoordinates(tt.lat, tt.lon)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	assert.EqualError(t, ValidateCoordinates(math.NaN(), 0), "Latitude must be a number")
	assert.EqualError(t, ValidateCoordinates(0, math.Inf(-1)), "Longitude must be a number")
	assert.EqualError(t, ValidateCoordinates(-90.5, 0), "Latitude must be between -90 and 90 degrees")
	assert.EqualError(t, ValidateCoordinates(0, 200), "Longitude must be between -180 and 180 degrees")
}
