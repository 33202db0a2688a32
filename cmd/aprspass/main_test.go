package main

import "os"

func Example_main() {
	os.Args = []string{"aprspass", "N0CALL"}

	main()
	// Output: 13023
}

func Example_main_ssid() {
	os.Args = []string{"aprspass", "-v", "kq4zci-10"}

	main()
	// Output:
	// Callsign: KQ4ZCI-10
	// Passcode: 20384
}

func Example_main_portable() {
	os.Args = []string{"aprspass", "--strip-portable=false", "KQ4ZCI/P"}

	main()
	// Output: 24816
}
