package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Recognize NMEA-0183 sentences from a GPS receiver.
 *
 * Description:	Only enough of the protocol to decide whether a
 *		receiver is talking and whether it has a position fix.
 *
 *		Talker IDs vary with the constellation mix:
 *
 *			$GPxxx = GPS
 *			$GLxxx = GLONASS
 *			$GAxxx = Galileo
 *			$GBxxx = BeiDou
 *			$GNxxx = Any combination
 *
 *		so the sentence type is taken from the last three
 *		characters of the address field.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strconv"
	"strings"
)

// FixSignal is what a single sentence says about the position fix.
type FixSignal int

const (
	FixUnknown FixSignal = iota // Not informative.
	FixNone                     // Receiver explicitly reports no fix.
	FixValid                    // Receiver reports a usable fix.
)

func (f FixSignal) String() string {
	switch f {
	case FixNone:
		return "nofix"
	case FixValid:
		return "fix"
	default:
		return "unknown"
	}
}

/*-------------------------------------------------------------------
 *
 * Name:	NMEAChecksumOK
 *
 * Purpose:	Validate the checksum of a sentence.
 *
 * Inputs:	sentence	- Raw line, e.g. "$GPRMC,...*6A".
 *				  Trailing white space (CR LF) is allowed.
 *
 * Returns:	true when the line has the form $<body>*<hh>, <hh> is exactly
 *		two hexadecimal digits and equals the XOR of all bytes of <body>.
 *
 *		Anything else, including an empty body, is false.
 *
 *--------------------------------------------------------------------*/

func NMEAChecksumOK(sentence string) bool {

	var s = strings.TrimRight(sentence, " \t\r\n")

	if !strings.HasPrefix(s, "$") {
		return false
	}

	var body, checksumStr, found = strings.Cut(s[1:], "*")
	if !found || len(body) == 0 || len(checksumStr) != 2 {
		return false
	}

	var checksum, err = strconv.ParseUint(checksumStr, 16, 8)
	if err != nil {
		return false
	}

	return NMEAChecksum(body) == byte(checksum)
}

// NMEAChecksum is the XOR of every byte of body, the part between '$' and '*'.
func NMEAChecksum(body string) byte {
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}

	return sum
}

// NMEASentence wraps body as a complete sentence with its checksum.
func NMEASentence(body string) string {
	return fmt.Sprintf("$%s*%02X", body, NMEAChecksum(body))
}

/*-------------------------------------------------------------------
 *
 * Name:	InterpretFix
 *
 * Purpose:	Decide whether a sentence asserts a position fix.
 *
 * Inputs:	sentence	- Should have passed NMEAChecksumOK first.
 *				  Nothing here detects corruption.
 *
 * Returns:	RMC field 2:	A -> FixValid, V -> FixNone.
 *		GGA field 6:	fix quality, all digits.  0 -> FixNone, other -> FixValid.
 *		Anything else is FixUnknown.
 *
 *--------------------------------------------------------------------*/

func InterpretFix(sentence string) FixSignal {

	var s = strings.TrimPrefix(strings.TrimSpace(sentence), "$")
	s, _, _ = strings.Cut(s, "*")

	var fields = strings.Split(s, ",")
	var address = fields[0]
	if len(address) < 3 {
		return FixUnknown
	}

	switch address[len(address)-3:] {
	case "RMC":
		if len(fields) <= 2 {
			return FixUnknown
		}
		switch fields[2] {
		case "A":
			return FixValid
		case "V":
			return FixNone
		}
	case "GGA":
		if len(fields) <= 6 || !allDigits(fields[6]) {
			return FixUnknown
		}
		// Leading zeros are still zero; avoid Atoi overflow on silly input.
		if strings.Trim(fields[6], "0") == "" {
			return FixNone
		}
		return FixValid
	}

	return FixUnknown
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// looksLikeNMEA is the cheap shape filter applied before checksum validation.
func looksLikeNMEA(line string) bool {
	return strings.HasPrefix(line, "$") && strings.Contains(line, "*")
}
