package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Interface to serial port, hiding operating system differences.
 *
 * Description:	The probe only ever needs three things from a device:
 *		open it at some speed, read a line without blocking
 *		for long, and close it.
 *
 *---------------------------------------------------------------*/

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pkg/term"
)

// SerialPort is an open device delivering text lines.
//
// ReadLine returns "" with a nil error when no complete line arrived within the
// per-read timeout, so callers can re-check their own deadline.
type SerialPort interface {
	ReadLine() (string, error)
	Close() error
}

// SerialOpener opens devicename at baud with the given per-read timeout.
type SerialOpener func(devicename string, baud int, readTimeout time.Duration) (SerialPort, error)

// Maximum length of message from GPS receiver is 82 according to some people.
// Anything this long without a newline is noise at the wrong speed.
const nmeaMaxLen = 160

var ErrUnsupportedSpeed = errors.New("unsupported serial speed")

// SupportedBauds are the speeds accepted by OpenSerialPort and the configuration.
var SupportedBauds = []int{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200, 230400}

func baudSupported(baud int) bool {
	for _, b := range SupportedBauds {
		if b == baud {
			return true
		}
	}
	return false
}

/*-------------------------------------------------------------------
 *
 * Name:	OpenSerialPort
 *
 * Purpose:	Open serial port.
 *
 * Inputs:	devicename	- Usually /dev/tty...  Could be /dev/rfcomm0 for Bluetooth.
 *
 *		baud		- Speed.  4800, 9600 bps, etc.
 *
 *		readTimeout	- Upper bound for a single read.  The terminal
 *				  driver counts in tenths of a second.
 *
 * Returns 	Handle for serial port, or an error.  Nothing is left open on error.
 *
 *---------------------------------------------------------------*/

func OpenSerialPort(devicename string, baud int, readTimeout time.Duration) (SerialPort, error) {

	if !baudSupported(baud) {
		return nil, fmt.Errorf("%s: %w %d", devicename, ErrUnsupportedSpeed, baud)
	}

	var fd, err = term.Open(devicename, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", devicename, err)
	}

	if err := fd.SetSpeed(baud); err != nil {
		fd.Close()
		return nil, fmt.Errorf("set speed %d on %s: %w", baud, devicename, err)
	}

	if err := fd.SetReadTimeout(readTimeout); err != nil {
		fd.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", devicename, err)
	}

	return &termPort{fd: fd, name: devicename}, nil
}

type termPort struct {
	fd      *term.Term
	name    string
	pending []byte
	chunk   [256]byte
}

/*-------------------------------------------------------------------
 *
 * Name:        ReadLine
 *
 * Purpose:     Get the next line from the serial port.
 *
 * Description:	At most one read is issued per call so a device that
 *		streams garbage without newlines can't keep us here.
 *		A read that times out comes back from the terminal
 *		driver as zero bytes, which pkg/term reports as io.EOF.
 *
 *--------------------------------------------------------------------*/

func (p *termPort) ReadLine() (string, error) {
	if line, ok := p.takeLine(); ok {
		return line, nil
	}

	var n, err = p.fd.Read(p.chunk[:])
	if n > 0 {
		p.pending = append(p.pending, p.chunk[:n]...)
		if line, ok := p.takeLine(); ok {
			return line, nil
		}
		if len(p.pending) > nmeaMaxLen {
			p.pending = p.pending[:0]
		}
		return "", nil
	}

	if err == nil || errors.Is(err, io.EOF) {
		return "", nil
	}

	return "", fmt.Errorf("read %s: %w", p.name, err)
}

func (p *termPort) takeLine() (string, bool) {
	var i = bytes.IndexByte(p.pending, '\n')
	if i < 0 {
		return "", false
	}

	var line = string(bytes.TrimRight(p.pending[:i], "\r"))
	p.pending = append(p.pending[:0], p.pending[i+1:]...)

	return line, true
}

func (p *termPort) Close() error {
	return p.fd.Close()
}
