package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Check that a latitude and longitude make sense.
 *
 * Usage:	validcoords latitude longitude
 *
 * Output:	Nothing on stdout.  The reason for rejection goes to
 *		stderr.  Exit code 0 valid, 1 invalid, 2 usage error.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"os"
)

func ValidCoordsMain() {
	var code = validCoords(os.Args, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
}

func validCoords(args []string, stderr io.Writer) int {
	var operands = dropSeparator(args[1:])

	if len(operands) != 2 {
		fmt.Fprintf(stderr, "Usage: %s latitude longitude\n", args[0])
		return 2
	}

	var _, _, err = ParseCoordinates(operands[0], operands[1])
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}

	return 0
}

// dropSeparator removes any "--" a caller used to protect negative numbers.
func dropSeparator(args []string) []string {
	var out = make([]string, 0, len(args))
	for _, a := range args {
		if a != "--" {
			out = append(out, a)
		}
	}
	return out
}
