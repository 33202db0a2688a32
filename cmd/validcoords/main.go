/* Check a latitude and longitude. */
package main

import (
	digihub "github.com/kq4zci/digihub/src"
)

func main() {
	digihub.ValidCoordsMain()
}
