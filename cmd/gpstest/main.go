/* Find the serial port with a working GPS receiver. */
package main

import (
	digihub "github.com/kq4zci/digihub/src"
)

func main() {
	digihub.GPSTestMain()
}
