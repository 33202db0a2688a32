/* Convert latitude and longitude to a Maidenhead grid square. */
package main

import (
	digihub "github.com/kq4zci/digihub/src"
)

func main() {
	digihub.HamGridMain()
}
