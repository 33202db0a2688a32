package digihub

// Utilities for working with https://github.com/tzneal/coordconv

import (
	"fmt"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/tzneal/coordconv"
)

func HemisphereToRune(h coordconv.Hemisphere) rune {
	switch h {
	case coordconv.HemisphereNorth:
		return 'N'
	case coordconv.HemisphereSouth:
		return 'S'
	case coordconv.HemisphereInvalid:
		return '!'
	default:
		return '?'
	}
}

// UTMLines describes a position in UTM and, at 1 m precision, MGRS.
// A conversion that fails is reported in its line instead.
func UTMLines(lat, lon float64) []string {
	var latlng = s2.LatLngFromDegrees(lat, lon)
	var lines []string

	var utmCoord, utmErr = coordconv.DefaultUTMConverter.ConvertFromGeodetic(latlng, 0)
	if utmErr == nil {
		lines = append(lines, fmt.Sprintf("UTM zone = %d, hemisphere = %c, easting = %.0f, northing = %.0f",
			utmCoord.Zone, HemisphereToRune(utmCoord.Hemisphere), utmCoord.Easting, utmCoord.Northing))
	} else {
		lines = append(lines, fmt.Sprintf("Conversion to UTM failed: %s", utmErr))
	}

	var mgrsCoord, mgrsErr = coordconv.DefaultMGRSConverter.ConvertFromGeodetic(latlng, 5)
	if mgrsErr == nil {
		lines = append(lines, fmt.Sprintf("MGRS = %s", strings.TrimSpace(fmt.Sprint(mgrsCoord))))
	} else {
		lines = append(lines, fmt.Sprintf("Conversion to MGRS failed: %s", mgrsErr))
	}

	return lines
}
