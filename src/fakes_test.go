package digihub

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// fakeClock only moves when something sleeps or a fake read times out.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, time.March, 23, 12, 35, 19, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var errFakeRead = errors.New("device went away")

// fakePort plays back a script of lines.  Once the script runs out every
// read times out, which advances the clock by the read timeout.
type fakePort struct {
	dev         *fakeDevices
	key         string
	lines       []string
	readErr     error // Returned once the script runs out, instead of timing out.
	readTimeout time.Duration
}

func (p *fakePort) ReadLine() (string, error) {
	if len(p.lines) > 0 {
		var line = p.lines[0]
		p.lines = p.lines[1:]
		p.dev.advance(time.Millisecond)
		return line, nil
	}
	if p.readErr != nil {
		return "", p.readErr
	}
	p.dev.advance(p.readTimeout)
	return "", nil
}

func (p *fakePort) Close() error {
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	p.dev.closes[p.key]++
	return nil
}

// fakeDevices stands in for the serial ports of a host.
// A port/baud without a script opens fine and stays silent.
// With a nil clock, reads take real time; for tests with several sniffers at once.
type fakeDevices struct {
	clock *fakeClock

	mu       sync.Mutex
	scripts  map[string][]string // "port@baud" -> lines
	readErrs map[string]error    // "port@baud" -> error after the script
	missing  map[string]bool     // port -> open fails
	opens    []string            // "port@baud" in order of opening
	closes   map[string]int
}

func newFakeDevices(clock *fakeClock) *fakeDevices {
	return &fakeDevices{
		clock:    clock,
		scripts:  make(map[string][]string),
		readErrs: make(map[string]error),
		missing:  make(map[string]bool),
		closes:   make(map[string]int),
	}
}

func (d *fakeDevices) advance(t time.Duration) {
	if d.clock == nil {
		time.Sleep(t)
		return
	}
	d.clock.sleep(t)
}

func (d *fakeDevices) now() time.Time {
	if d.clock == nil {
		return time.Now()
	}
	return d.clock.now()
}

// pause is the sniffer's settle delay.
func (d *fakeDevices) pause(ctx context.Context, t time.Duration) {
	if d.clock == nil {
		sleepContext(ctx, t)
		return
	}
	d.clock.sleep(t)
}

func deviceKey(port string, baud int) string {
	return fmt.Sprintf("%s@%d", port, baud)
}

func (d *fakeDevices) script(port string, baud int, lines ...string) {
	d.scripts[deviceKey(port, baud)] = lines
}

func (d *fakeDevices) open(devicename string, baud int, readTimeout time.Duration) (SerialPort, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var key = deviceKey(devicename, baud)
	d.opens = append(d.opens, key)

	if d.missing[devicename] {
		return nil, fmt.Errorf("open %s: no such file or directory", devicename)
	}

	return &fakePort{
		dev:         d,
		key:         key,
		lines:       append([]string(nil), d.scripts[key]...),
		readErr:     d.readErrs[key],
		readTimeout: readTimeout,
	}, nil
}

func (d *fakeDevices) opened() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.opens...)
}

// balanced reports whether every successful open was closed exactly once.
func (d *fakeDevices) balanced() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	var want = make(map[string]int)
	for _, key := range d.opens {
		if !d.missing[key[:strings.LastIndex(key, "@")]] {
			want[key]++
		}
	}
	if len(want) != len(d.closes) {
		return false
	}
	for key, n := range want {
		if d.closes[key] != n {
			return false
		}
	}
	return true
}

func (d *fakeDevices) host(ports ...string) probeHost {
	return probeHost{
		goos:  "linux",
		open:  d.open,
		ports: StaticPorts(ports),
		now:   d.now,
		sleep: d.pause,
	}
}

// Well formed sentences for the scripts.
var (
	rmcFix   = NMEASentence("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W")
	rmcNoFix = NMEASentence("GPRMC,123519,V,,,,,,,230394,,,N")
	ggaFix   = NMEASentence("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,")
	ggaNoFix = NMEASentence("GNGGA,123519,,,,,0,00,99.99,,,,,,")
	gsv      = NMEASentence("GPGSV,1,1,00")
)
