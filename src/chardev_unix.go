//go:build unix

package digihub

import (
	"golang.org/x/sys/unix"
)

// isCharDevice follows symlinks such as /dev/serial/by-id/... to the device node.
func isCharDevice(path string) (bool, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false, err
	}

	return st.Mode&unix.S_IFMT == unix.S_IFCHR, nil
}
