package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Search the port x baud grid for a GPS receiver.
 *
 * Description:	For each port, try each speed in order:
 *
 *		  - A fix ends the whole search.
 *		  - Good NMEA without a fix means the speed is right
 *		    for this port; skip its remaining speeds.
 *		  - Anything else: next speed.
 *
 *		If nothing works, the best answer seen anywhere is reported,
 *		ranked working > nofix > nodata > nogps.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

var ErrUnsupportedHost = errors.New("GPS discovery needs a Linux-like host")

// DefaultBauds cover what GPS receivers ship with, NMEA standard 4800 first.
var DefaultBauds = []int{4800, 9600, 19200, 38400, 57600, 115200}

type Prober struct {
	Ports   PortLister
	Sniffer *Sniffer
	Bauds   []int

	// Workers > 1 probes that many ports at once.  Each port still has
	// exactly one owner, and its speeds are tried in order.
	Workers int

	// GOOS of the host; device naming conventions differ elsewhere.
	GOOS string

	Logger *log.Logger
}

// CheckHost rejects hosts where /dev/tty* discovery makes no sense.
func CheckHost(goos string) error {
	switch goos {
	case "linux", "android":
		return nil
	default:
		return ErrUnsupportedHost
	}
}

/*-------------------------------------------------------------------
 *
 * Name:	Probe
 *
 * Purpose:	Run the whole search.
 *
 * Returns:	The final result.  nogps when the host is unsupported
 *		or there are no ports at all.
 *
 *--------------------------------------------------------------------*/

func (p *Prober) Probe(ctx context.Context) ProbeResult {
	var logger = p.logger()

	if err := CheckHost(p.GOOS); err != nil {
		logger.Warn("not probing", "goos", p.GOOS, "err", err)
		return ProbeResult{Status: StatusNoGPS}
	}

	var ports = p.Ports.ListPorts()
	logger.Debug("candidate ports", "ports", ports)

	if len(ports) == 0 {
		return ProbeResult{Status: StatusNoGPS}
	}

	if p.Workers > 1 {
		return p.probeParallel(ctx, ports)
	}

	var best = ProbeResult{Status: StatusNoGPS}
	for _, port := range ports {
		if ctx.Err() != nil {
			break
		}
		best.merge(p.probePort(ctx, port))
		if best.Status == StatusWorking {
			break
		}
	}

	return best
}

// probePort sweeps the speeds of one port.
func (p *Prober) probePort(ctx context.Context, port string) ProbeResult {
	var logger = p.logger()
	var bauds = p.Bauds
	if len(bauds) == 0 {
		bauds = DefaultBauds
	}

	var best = ProbeResult{Status: StatusNoGPS}
	for _, baud := range bauds {
		if ctx.Err() != nil {
			break
		}

		logger.Debugf("Trying %s@%d", port, baud)

		var outcome = p.Sniffer.Sniff(ctx, port, baud)
		best.fold(outcome)

		if outcome.State == SniffFix || outcome.NMEAOK {
			break
		}
	}

	return best
}

// probeParallel gives each port its own worker.  Results are merged in
// port order afterwards so ties resolve as they do one port at a time.
func (p *Prober) probeParallel(ctx context.Context, ports []string) ProbeResult {
	var ctx2, cancel = context.WithCancel(ctx)
	defer cancel()

	var g, gctx = errgroup.WithContext(ctx2)
	g.SetLimit(p.Workers)

	var results = make([]ProbeResult, len(ports)) // Zero value is nogps.

	for i, port := range ports {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			results[i] = p.probePort(gctx, port)
			if results[i].Status == StatusWorking {
				cancel()
			}

			return nil
		})
	}

	_ = g.Wait() // Workers never return errors.

	var best = ProbeResult{Status: StatusNoGPS}
	for _, r := range results {
		best.merge(r)
	}

	return best
}

func (p *Prober) logger() *log.Logger {
	if p.Logger == nil {
		return discardLogger()
	}
	return p.Logger
}
