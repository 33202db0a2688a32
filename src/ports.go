package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Find serial devices which might have a GPS receiver attached.
 *
 * Description:	Candidates come from the device registries of the host
 *		(udev, the serial port enumerator) followed by the two
 *		conventional names of USB serial adapters:
 *
 *			/dev/ttyUSB*	- USB to serial bridge (FTDI, CP210x, PL2303, ...)
 *			/dev/ttyACM*	- USB CDC ACM, e.g. u-blox receivers.
 *
 *		Registries are best effort.  If one fails we still have the others
 *		and the glob.
 *
 *---------------------------------------------------------------*/

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"go.bug.st/serial/enumerator"
)

// DeviceRegistry lists serial-like device nodes known to the host.
// The list may be partial; the error is a diagnostic only.
type DeviceRegistry interface {
	Name() string
	SerialDevices() ([]string, error)
}

// PortLister supplies candidate ports to the probe loop.
type PortLister interface {
	ListPorts() []string
}

var serialDevicePatterns = []string{
	"/dev/ttyUSB*",
	"/dev/ttyACM*",
}

type PortEnumerator struct {
	Registries []DeviceRegistry
	Patterns   []string

	// Strict also requires a path to be a character device, not just exist.
	Strict bool

	Logger *log.Logger

	glob func(pattern string) ([]string, error)
	stat func(path string) (bool, error) // Reports whether path is a character device.
}

// NewPortEnumerator uses every registry available on this host plus the usual device name patterns.
func NewPortEnumerator(strict bool, logger *log.Logger) *PortEnumerator {
	var registries []DeviceRegistry
	if r := newUdevRegistry(); r != nil {
		registries = append(registries, r)
	}
	registries = append(registries, enumeratorRegistry{})

	return &PortEnumerator{
		Registries: registries,
		Patterns:   serialDevicePatterns,
		Strict:     strict,
		Logger:     logger,
		glob:       filepath.Glob,
		stat:       isCharDevice,
	}
}

/*-------------------------------------------------------------------
 *
 * Name:	ListPorts
 *
 * Purpose:	Merge all sources into one list.
 *
 * Returns:	Device paths in the order first seen, no duplicates,
 *		only those which exist right now.  Never fails; an
 *		empty list means nothing was found.
 *
 *--------------------------------------------------------------------*/

func (e *PortEnumerator) ListPorts() []string {
	var logger = e.Logger
	if logger == nil {
		logger = discardLogger()
	}

	var candidates []string

	for _, r := range e.Registries {
		var names, err = r.SerialDevices()
		if err != nil {
			logger.Debug("device registry incomplete", "registry", r.Name(), "err", err)
		}
		candidates = append(candidates, names...)
	}

	var glob = e.glob
	if glob == nil {
		glob = filepath.Glob
	}
	for _, pattern := range e.Patterns {
		var matches, err = glob(pattern)
		if err != nil {
			logger.Debug("bad device pattern", "pattern", pattern, "err", err)
			continue
		}
		candidates = append(candidates, matches...)
	}

	var stat = e.stat
	if stat == nil {
		stat = isCharDevice
	}

	var seen = make(map[string]bool)
	var ports []string
	for _, path := range candidates {
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		var isChar, err = stat(path)
		if err != nil {
			logger.Debug("skipping missing device", "port", path, "err", err)
			continue
		}
		if e.Strict && !isChar {
			logger.Debug("skipping, not a character device", "port", path)
			continue
		}

		ports = append(ports, path)
	}

	return ports
}

// enumeratorRegistry asks go.bug.st/serial, which knows the platform specific places to look.
type enumeratorRegistry struct{}

func (enumeratorRegistry) Name() string { return "enumerator" }

func (enumeratorRegistry) SerialDevices() ([]string, error) {
	var details, err = enumerator.GetDetailedPortsList()

	var names = make([]string, 0, len(details))
	for _, d := range details {
		names = append(names, d.Name)
	}

	return names, err
}

// ttyDevice is what the udev registry looks at for each tty node.
type ttyDevice struct {
	devnode      string
	syspath      string
	bus          string // ID_BUS property, e.g. "usb".
	driver       string
	hasParent    bool
	parentDriver string
}

// isSerialPort keeps devices that hang off a bus.  Virtual consoles and
// pseudo terminals live under /sys/devices/virtual.  serial8250 registers
// placeholder ttyS nodes whether or not a UART is present.
func (d ttyDevice) isSerialPort() bool {
	if d.devnode == "" || strings.Contains(d.syspath, "/virtual/") {
		return false
	}
	if d.bus != "" {
		return true
	}
	if !d.hasParent {
		return false
	}
	return d.driver != "serial8250" && d.parentDriver != "serial8250"
}

// StaticPorts is a fixed candidate list, e.g. a port named in the configuration.
type StaticPorts []string

func (s StaticPorts) ListPorts() []string {
	return append([]string(nil), s...)
}
