//go:build linux && cgo

package digihub

import (
	"fmt"

	"github.com/jochenvg/go-udev"
)

// udevRegistry lists the tty subsystem, keeping devices that hang off a bus.
type udevRegistry struct{}

func newUdevRegistry() DeviceRegistry {
	return udevRegistry{}
}

func (udevRegistry) Name() string { return "udev" }

func (udevRegistry) SerialDevices() ([]string, error) {
	var u udev.Udev

	var enumerate = u.NewEnumerate()
	if enumerate == nil {
		return nil, fmt.Errorf("udev: can't create enumerator")
	}

	if err := enumerate.AddMatchSubsystem("tty"); err != nil {
		return nil, fmt.Errorf("udev: match subsystem: %w", err)
	}

	var devices, err = enumerate.Devices()
	if err != nil {
		return nil, fmt.Errorf("udev: scan devices: %w", err)
	}

	var names []string
	for _, d := range devices {
		var tty = ttyDevice{
			devnode: d.Devnode(),
			syspath: d.Syspath(),
			bus:     d.PropertyValue("ID_BUS"),
			driver:  d.Driver(),
		}
		if parent := d.Parent(); parent != nil {
			tty.hasParent = true
			tty.parentDriver = parent.Driver()
		}

		if tty.isSerialPort() {
			names = append(names, tty.devnode)
		}
	}

	return names, nil
}
