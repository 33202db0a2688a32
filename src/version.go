package digihub

import (
	"fmt"
	"io"
	"runtime/debug"
	"strconv"
)

// Set at build time via `-ldflags "-X 'github.com/kq4zci/digihub/src.DIGIHUB_VERSION=X'"`
var DIGIHUB_VERSION string

// buildStamp is what --version reports about the binary.
type buildStamp struct {
	Version  string
	Revision string // "-DIRTY" appended for a modified tree.
	Time     string
}

func readBuildStamp(bi *debug.BuildInfo) buildStamp {
	var stamp = buildStamp{
		Version:  IfThenElse(DIGIHUB_VERSION == "", "!UNKNOWN!", DIGIHUB_VERSION),
		Revision: "UNKNOWN",
		Time:     "UNKNOWN",
	}
	if bi == nil {
		return stamp
	}

	var modified = ""
	for _, bs := range bi.Settings {
		switch bs.Key {
		case "vcs.revision":
			stamp.Revision = bs.Value
		case "vcs.time":
			stamp.Time = bs.Value
		case "vcs.modified":
			modified = bs.Value
		}
	}

	if modified != "" {
		if dirty, err := strconv.ParseBool(modified); err != nil {
			stamp.Revision += "-UNKNOWNDIRTY"
		} else if dirty {
			stamp.Revision += "-DIRTY"
		}
	}

	return stamp
}

func (s buildStamp) String() string {
	return fmt.Sprintf("Version %s (revision %s, built at %s)", s.Version, s.Revision, s.Time)
}

func printVersion(w io.Writer, tool string, verbose bool) {
	var bi, _ = debug.ReadBuildInfo()

	fmt.Fprintf(w, "DigiHub %s - %s\n", tool, readBuildStamp(bi))

	if verbose && bi != nil {
		fmt.Fprintf(w, "\n%s", bi)
	}
}
