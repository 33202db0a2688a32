package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Calculate the APRS-IS passcode for a callsign.
 *
 * Usage:	aprspass [ options ] callsign
 *
 * Description:	The passcode is a 15 bit hash of the base callsign.
 *		The SSID never counts, so N0CALL and N0CALL-9 share
 *		a passcode.  Portable and mobile suffixes (/P, /M, /MM)
 *		are dropped as well unless told otherwise.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
)

var ErrNoCallsign = errors.New("no callsign")

var portableSuffix = regexp.MustCompile(`(?i)/(P|M|MM)$`)

// NormalizeCallsign trims and uppercases a callsign.  With stripPortable
// a trailing /P, /M or /MM is removed as well.
func NormalizeCallsign(callsign string, stripPortable bool) string {
	var cs = strings.ToUpper(strings.TrimSpace(callsign))
	if !stripPortable {
		return cs
	}

	return portableSuffix.ReplaceAllString(cs, "")
}

/*-------------------------------------------------------------------
 *
 * Name:	AprsPasscode
 *
 * Purpose:	Hash a callsign.
 *
 * Inputs:	callsign	- e.g. "KQ4ZCI-10"
 *		stripPortable	- See NormalizeCallsign.
 *
 * Returns:	0 .. 32767
 *
 * Description:	Start with 0x73e2.  Characters at even positions are
 *		XORed into the high byte, odd positions into the low byte.
 *
 *--------------------------------------------------------------------*/

func AprsPasscode(callsign string, stripPortable bool) int {
	var cs = NormalizeCallsign(callsign, stripPortable)
	cs, _, _ = strings.Cut(cs, "-")

	var hash = 0x73e2
	var i = 0
	for _, ch := range cs {
		if i&1 == 0 {
			hash ^= int(ch) << 8
		} else {
			hash ^= int(ch)
		}
		i++
	}

	return hash & 0x7fff
}

func AprsPassMain() {
	var code = aprsPass(os.Args, os.Stdout, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
}

// aprsPass exits 2 for usage problems, like the other utilities.
func aprsPass(args []string, stdout, stderr io.Writer) int {
	var flags = pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var configFile = flags.StringP("config", "c", "", "Configuration file, for the aprs.strip_portable default.")
	var stripPortable = flags.BoolP("strip-portable", "p", true, "Ignore a trailing /P, /M or /MM.")
	var verbose = flags.BoolP("verbose", "v", false, "Also show the callsign.")
	var help = flags.BoolP("help", "h", false, "Display help text.")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "%s - Calculate APRS-IS passcode for a callsign.\n", args[0])
		fmt.Fprintf(stderr, "\n")
		fmt.Fprintf(stderr, "Usage: %s [options] callsign\n", args[0])
		fmt.Fprintf(stderr, "\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args[1:]); err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", args[0], err)
		return 2
	}
	if *help {
		flags.Usage()
		return 0
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}

	var callsign = flags.Arg(0)
	if strings.TrimSpace(callsign) == "" {
		fmt.Fprintf(stderr, "%s: %s\n", args[0], ErrNoCallsign)
		return 2
	}

	var strip = *stripPortable
	if !flags.Changed("strip-portable") {
		var cfg, _, err = LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %s\n", args[0], err)
			return 2
		}
		strip = cfg.APRS.StripPortable
	}

	var passcode = AprsPasscode(callsign, strip)

	if *verbose {
		fmt.Fprintf(stdout, "Callsign: %s\n", NormalizeCallsign(callsign, strip))
		fmt.Fprintf(stdout, "Passcode: %d\n", passcode)
	} else {
		fmt.Fprintf(stdout, "%d\n", passcode)
	}

	return 0
}
