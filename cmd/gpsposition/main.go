/* Print the current latitude,longitude from the GPS receiver. */
package main

import (
	digihub "github.com/kq4zci/digihub/src"
)

func main() {
	digihub.GPSPositionMain()
}
