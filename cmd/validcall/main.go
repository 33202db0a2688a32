/* Check a US amateur radio callsign. */
package main

import (
	digihub "github.com/kq4zci/digihub/src"
)

func main() {
	digihub.ValidCallMain()
}
