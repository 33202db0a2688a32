package digihub

/*------------------------------------------------------------------
 *
 * Purpose:	Diagnostics for the command line tools.
 *
 * Description: Results go to stdout and are meant to be consumed by
 *		shell scripts, one line each.  Everything else goes
 *		through a logger on stderr so it can never be mixed up
 *		with a result.
 *
 *------------------------------------------------------------------*/

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger returns a stderr-style logger for one tool.
// With debug set, timestamps and debug messages are shown; otherwise only warnings and errors.
func NewLogger(w io.Writer, tool string, debug bool) *log.Logger {
	var level = log.WarnLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{ //nolint:exhaustruct
		Prefix:          tool,
		Level:           level,
		ReportTimestamp: debug,
		TimeFormat:      time.TimeOnly,
	})
}

// discardLogger is used when a component is built without one.
func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel}) //nolint:exhaustruct
}
