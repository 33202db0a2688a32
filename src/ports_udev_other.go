//go:build !linux || !cgo

package digihub

// No udev here; the enumerator and the device name patterns still apply.
func newUdevRegistry() DeviceRegistry {
	return nil
}
