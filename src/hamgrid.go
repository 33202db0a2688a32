package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Convert latitude and longitude into a Maidenhead grid square.
 *
 * Usage:	hamgrid [ options ] latitude longitude
 *		hamgrid --reverse locator
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

func HamGridMain() {
	var code = hamGrid(os.Args, os.Stdout, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
}

func hamGrid(args []string, stdout, stderr io.Writer) int {
	var flags = pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var reverse = flags.StringP("reverse", "r", "", "Print the centre latitude,longitude of this locator instead.")
	var utm = flags.BoolP("utm", "u", false, "Also print UTM and MGRS.")
	var help = flags.BoolP("help", "h", false, "Display help text.")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "%s - Calculate Maidenhead grid from latitude and longitude.\n", args[0])
		fmt.Fprintf(stderr, "\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "\t%s  latitude  longitude\n", args[0])
		fmt.Fprintf(stderr, "\t%s  --reverse locator\n", args[0])
		fmt.Fprintf(stderr, "\n")
		fmt.Fprintf(stderr, "Latitude and longitude are in decimal degrees.\n")
		fmt.Fprintf(stderr, "   Use negative for south or west.\n")
		fmt.Fprintf(stderr, "\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\n")
		fmt.Fprintf(stderr, "Example:\n")
		fmt.Fprintf(stderr, "\t%s 41.714649 -72.728485\n", args[0])
	}

	if err := flags.Parse(withNegativeNumbers(args[1:])); err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", args[0], err)
		return 2
	}
	if *help {
		flags.Usage()
		return 0
	}

	if *reverse != "" {
		if flags.NArg() != 0 {
			flags.Usage()
			return 2
		}
		var lat, lon, err = LatLonFromLocator(*reverse)
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "%.6f,%.6f\n", lat, lon)
		return 0
	}

	if flags.NArg() != 2 {
		flags.Usage()
		return 2
	}

	var lat, lon, err = ParseCoordinates(flags.Arg(0), flags.Arg(1))
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}

	fmt.Fprintln(stdout, MaidenheadLocator(lat, lon))

	if *utm {
		for _, line := range UTMLines(lat, lon) {
			fmt.Fprintln(stdout, line)
		}
	}

	return 0
}

// withNegativeNumbers puts "--" in front of the first argument that is a
// negative number so "hamgrid 41.7 -72.7" works without quoting tricks.
func withNegativeNumbers(args []string) []string {
	for i, a := range args {
		if a == "--" {
			return args
		}
		if len(a) > 1 && a[0] == '-' && (a[1] == '.' || (a[1] >= '0' && a[1] <= '9')) {
			var out = append([]string(nil), args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
	}
	return args
}
