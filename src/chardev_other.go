//go:build !unix

package digihub

import "os"

func isCharDevice(path string) (bool, error) {
	var fi, err = os.Stat(path)
	if err != nil {
		return false, err
	}

	return fi.Mode()&os.ModeCharDevice != 0, nil
}
