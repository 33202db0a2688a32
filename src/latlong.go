package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Various functions for dealing with latitude and longitude.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrLatitudeNotNumber  = errors.New("Latitude must be a number")                     //nolint:staticcheck
	ErrLongitudeNotNumber = errors.New("Longitude must be a number")                    //nolint:staticcheck
	ErrLatitudeRange      = errors.New("Latitude must be between -90 and 90 degrees")   //nolint:staticcheck
	ErrLongitudeRange     = errors.New("Longitude must be between -180 and 180 degrees") //nolint:staticcheck
)

// ValidateCoordinates checks decimal degrees.  NaN and infinities are not numbers.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return ErrLatitudeNotNumber
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return ErrLongitudeNotNumber
	}
	if lat < -90. || lat > 90. {
		return ErrLatitudeRange
	}
	if lon < -180. || lon > 180. {
		return ErrLongitudeRange
	}
	return nil
}

// ParseCoordinates converts command line arguments and validates them.
func ParseCoordinates(slat, slon string) (float64, float64, error) {
	var lat, latErr = strconv.ParseFloat(strings.TrimSpace(slat), 64)
	if latErr != nil {
		return 0, 0, ErrLatitudeNotNumber
	}

	var lon, lonErr = strconv.ParseFloat(strings.TrimSpace(slon), 64)
	if lonErr != nil {
		return 0, 0, ErrLongitudeNotNumber
	}

	return lat, lon, ValidateCoordinates(lat, lon)
}

// pyMod is a floored modulo, the sign follows the divisor.
func pyMod(a, b float64) float64 {
	return a - b*math.Floor(a/b)
}

/*------------------------------------------------------------------
 *
 * Function:	MaidenheadLocator
 *
 * Purpose:	Convert latitude and longitude to a 6 character grid square.
 *
 * Inputs:	lat, lon	- Decimal degrees.  Negative for south or west.
 *
 * Returns:	Field (2 letters), square (2 digits), subsquare (2 letters).
 *		The subsquare is lower case by convention, e.g. FN31pr.
 *
 * Description:	Field	20 x 10 degrees, A .. R
 *		Square	 2 x  1 degrees, 0 .. 9
 *		Sub	 5 x  2.5 minutes, a .. x
 *
 *------------------------------------------------------------------*/

func MaidenheadLocator(lat, lon float64) string {
	var fieldLon = int((lon + 180) / 20)
	var fieldLat = int((lat + 90) / 10)

	var squareLon = int(pyMod(lon+180, 20) / 2)
	var squareLat = int(pyMod(lat+90, 10) / 1)

	var subLon = int(pyMod(pyMod(lon+180, 20), 2) / (2. / 24))
	var subLat = int(pyMod(pyMod(lat+90, 10), 1) / (1. / 24))

	return fmt.Sprintf("%c%c%d%d%c%c",
		'A'+rune(fieldLon), 'A'+rune(fieldLat),
		squareLon, squareLat,
		'a'+rune(subLon), 'a'+rune(subLat))
}

/*------------------------------------------------------------------
 *
 * Function:	LatLonFromLocator
 *
 * Purpose:	Convert Maidenhead locator to latitude and longitude.
 *
 * Inputs:	locator	- 2, 4, 6, 8, 10, or 12 character grid square locator.
 *			  Case doesn't matter.
 *
 * Returns:	Centre of the square, or an error.
 *
 * Rambling:	For 8 character form, each latitude unit is 0.25 minute.
 *		With another two pairs, we are down around 2 meters for latitude.
 *
 *------------------------------------------------------------------*/

const mhMaxPairs = 6
const mhUnits = 18 * 10 * 24 * 10 * 24 * 10 * 2

type mhPair struct {
	position string
	minCh    byte
	maxCh    byte
	value    int
}

var mhPairs = [mhMaxPairs]mhPair{
	{"first", 'A', 'R', 10 * 24 * 10 * 24 * 10 * 2},
	{"second", '0', '9', 24 * 10 * 24 * 10 * 2},
	{"third", 'A', 'X', 10 * 24 * 10 * 2},
	{"fourth", '0', '9', 24 * 10 * 2},
	{"fifth", 'A', 'X', 10 * 2},
	{"sixth", '0', '9', 2},
} // Even so we can get center of square.

func LatLonFromLocator(locator string) (float64, float64, error) {
	var np = len(locator) / 2

	if len(locator)%2 != 0 || np < 1 || np > mhMaxPairs {
		return 0, 0, fmt.Errorf("Maidenhead locator %q must be 1 to %d pairs of characters", locator, mhMaxPairs) //nolint:staticcheck
	}

	var mh = strings.ToUpper(locator)

	var ilat, ilon int
	for n := range np {
		var pair = mhPairs[n]
		if mh[2*n] < pair.minCh || mh[2*n] > pair.maxCh || mh[2*n+1] < pair.minCh || mh[2*n+1] > pair.maxCh {
			return 0, 0, fmt.Errorf("The %s pair of characters in Maidenhead locator %q must be in range of %c thru %c", //nolint:staticcheck
				pair.position, locator, pair.minCh, pair.maxCh)
		}

		ilon += int(mh[2*n]-pair.minCh) * pair.value
		ilat += int(mh[2*n+1]-pair.minCh) * pair.value

		if n == np-1 { // Last pair, take center of square.
			ilon += pair.value / 2
			ilat += pair.value / 2
		}
	}

	var dlat = float64(ilat)/mhUnits*180. - 90.
	var dlon = float64(ilon)/mhUnits*360. - 180.

	return dlat, dlon, nil
}
