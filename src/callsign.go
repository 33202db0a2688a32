package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Check for valid US callsign format.
 *
 * Usage:	validcall callsign
 *
 * Output:	Exit code only:
 *			0	valid
 *			1	invalid
 *			2	usage error
 *
 *---------------------------------------------------------------*/

import (
	"os"
	"regexp"
	"strings"
)

// Optional portable suffixes, removed before matching.
var usPortableSuffix = regexp.MustCompile(`/(P|M|MM|AM)$`)

var usCallsign = regexp.MustCompile(`^(?:` +
	`[KNW][A-Z]?|` + // K/N/W or KA-KZ, NA-NZ, WA-WZ
	`A[A-L]` + // AA-AL
	`)` +
	`[0-9]` + // single digit
	`[A-Z]{1,3}$`) // 1-3 letter suffix

func IsValidUSCallsign(callsign string) bool {
	var cs = strings.ToUpper(strings.TrimSpace(callsign))
	cs = usPortableSuffix.ReplaceAllString(cs, "")

	return usCallsign.MatchString(cs)
}

func ValidCallMain() {
	var code = validCall(os.Args)
	if code != 0 {
		os.Exit(code)
	}
}

func validCall(args []string) int {
	if len(args) != 2 {
		return 2
	}

	return IfThenElse(IsValidUSCallsign(args[1]), 0, 1)
}
