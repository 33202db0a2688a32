package digihub

import (
	"fmt"
	"io"
)

// ProbeStatus is ordered: a larger value means more confidence that a working GPS is attached.
type ProbeStatus int

const (
	StatusNoGPS   ProbeStatus = iota // Nothing answered at all.
	StatusNoData                     // A device opened but said nothing recognizable.
	StatusNoFix                      // NMEA is flowing but there is no position fix.
	StatusWorking                    // Valid fix.
)

func (s ProbeStatus) String() string {
	switch s {
	case StatusWorking:
		return "working"
	case StatusNoFix:
		return "nofix"
	case StatusNoData:
		return "nodata"
	default:
		return "nogps"
	}
}

// Outranks reports whether s is a better answer than o.
func (s ProbeStatus) Outranks(o ProbeStatus) bool {
	return s > o
}

// Process exit codes.
const (
	ExitWorking = 0
	ExitNoFix   = 1
	ExitNoData  = 2
	ExitNoGPS   = 3
	ExitConfig  = 4 // Bad command line or configuration file.
)

func (s ProbeStatus) ExitCode() int {
	switch s {
	case StatusWorking:
		return ExitWorking
	case StatusNoFix:
		return ExitNoFix
	case StatusNoData:
		return ExitNoData
	default:
		return ExitNoGPS
	}
}

// ProbeResult is the single answer of a probe.
// Port is only set for working and nofix, where a device was actually heard.
type ProbeResult struct {
	Port   string
	Baud   int
	Status ProbeStatus
}

// fold merges one attempt.  On a tie the earlier result stays.
func (r *ProbeResult) fold(o SniffOutcome) {
	var status = o.Status()
	if !status.Outranks(r.Status) {
		return
	}

	r.Status = status
	if status >= StatusNoFix {
		r.Port = o.Port
		r.Baud = o.Baud
	} else {
		r.Port = ""
		r.Baud = 0
	}
}

func (r *ProbeResult) merge(o ProbeResult) {
	if o.Status.Outranks(r.Status) {
		*r = o
	}
}

// Line is the wire format written to stdout.
func (r ProbeResult) Line() string {
	switch r.Status {
	case StatusWorking, StatusNoFix:
		return fmt.Sprintf("%s,%s", r.Port, r.Status)
	default:
		return fmt.Sprintf("%s,%s", r.Status, r.Status)
	}
}

// ReportProbeResult prints the one result line and returns the process exit code.
func ReportProbeResult(w io.Writer, r ProbeResult) int {
	fmt.Fprintln(w, r.Line())
	return r.Status.ExitCode()
}
