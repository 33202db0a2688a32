/* Calculate the APRS-IS passcode for a callsign. */
package main

import (
	digihub "github.com/kq4zci/digihub/src"
)

func main() {
	digihub.AprsPassMain()
}
