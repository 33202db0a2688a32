package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Find the GPS receiver attached to the station.
 *
 * Usage:	gpstest [ options ]
 *
 * Output:	Exactly one line on stdout, and the exit code:
 *
 *			<port>,working	0	Receiver with a valid fix.
 *			<port>,nofix	1	Receiver talking NMEA, no fix yet.
 *			nodata,nodata	2	Something opened but no NMEA.
 *			nogps,nogps	3	Nothing at all, or unsupported host.
 *
 *		Bad options or configuration exit with 4 and no stdout.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

// probeHost is everything gpstest takes from the machine it runs on.
type probeHost struct {
	goos  string
	open  SerialOpener
	ports PortLister // nil means the real enumerator.

	now   func() time.Time
	sleep func(context.Context, time.Duration)
}

func realHost() probeHost {
	return probeHost{
		goos:  runtime.GOOS,
		open:  OpenSerialPort,
		now:   time.Now,
		sleep: sleepContext,
	}
}

func GPSTestMain() {
	var ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var code = gpsTest(ctx, os.Args, os.Stdout, os.Stderr, realHost())
	if code != 0 {
		stop()
		os.Exit(code)
	}
}

type gpsTestOptions struct {
	config  Config
	debug   bool
	version bool
	help    bool
}

func gpsTestFlags(args []string, stderr io.Writer) (*gpsTestOptions, error) {
	var flags = pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var configFile = flags.StringP("config", "c", "", "Configuration file.  Default: first of digihub.yaml, /etc/digihub/digihub.yaml, ...")
	var listen = flags.Float64("listen", DefaultConfig().Probe.Listen.Seconds(), "Seconds to listen for each port and speed.")
	var bauds = flags.IntSlice("bauds", DefaultBauds, "Speeds to try, in order, comma separated.")
	var settle = flags.Duration("settle", DefaultConfig().Probe.Settle, "Pause after opening a port before reading.")
	var workers = flags.Int("workers", 1, "Number of ports to probe at the same time.")
	var strict = flags.Bool("strict", true, "Only consider character devices.")
	var debug = flags.BoolP("debug", "d", false, "Print diagnostics, such as each port and speed tried, to stderr.")
	var version = flags.Bool("version", false, "Print version and exit.")
	var help = flags.BoolP("help", "h", false, "Display help text.")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "%s - Find which serial port, if any, has a working GPS receiver.\n", args[0])
		fmt.Fprintf(stderr, "\n")
		fmt.Fprintf(stderr, "Prints one of <port>,working  <port>,nofix  nodata,nodata  nogps,nogps\n")
		fmt.Fprintf(stderr, "and exits with 0, 1, 2, or 3 respectively.\n")
		fmt.Fprintf(stderr, "\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args[1:]); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", flags.Arg(0))
	}

	var opts = &gpsTestOptions{debug: *debug, version: *version, help: *help}
	if opts.help {
		flags.Usage()
		return opts, nil
	}
	if opts.version {
		return opts, nil
	}

	var cfg, _, err = LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}

	// Command line wins over the configuration file.
	if flags.Changed("listen") {
		cfg.Probe.Listen = time.Duration(*listen * float64(time.Second))
	}
	if flags.Changed("bauds") {
		cfg.Probe.Bauds = *bauds
	}
	if flags.Changed("settle") {
		cfg.Probe.Settle = *settle
	}
	if flags.Changed("workers") {
		cfg.Probe.Workers = *workers
	}
	if flags.Changed("strict") {
		cfg.Probe.Strict = *strict
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts.config = cfg

	return opts, nil
}

/*-------------------------------------------------------------------
 *
 * Name:	gpsTest
 *
 * Purpose:	Body of the gpstest command.
 *
 * Returns:	Process exit code.
 *
 *--------------------------------------------------------------------*/

func gpsTest(ctx context.Context, args []string, stdout, stderr io.Writer, host probeHost) int {
	var opts, err = gpsTestFlags(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", args[0], err)
		return ExitConfig
	}

	if opts.help {
		return ExitWorking
	}
	if opts.version {
		printVersion(stdout, "gpstest", opts.debug)
		return ExitWorking
	}

	var logger = NewLogger(stderr, "gpstest", opts.debug)
	var cfg = opts.config

	var prober = newProber(cfg, host, logger)
	var result = prober.Probe(ctx)

	logger.Debug("result", "port", result.Port, "baud", result.Baud, "status", result.Status)

	return ReportProbeResult(stdout, result)
}

// newProber assembles the probe loop from configuration and the host hooks.
func newProber(cfg Config, host probeHost, logger *log.Logger) *Prober {
	var sniffer = NewSniffer(host.open, cfg.SniffConfig(), logger)
	if host.now != nil {
		sniffer.now = host.now
	}
	if host.sleep != nil {
		sniffer.sleep = host.sleep
	}

	var prober = &Prober{
		Sniffer: sniffer,
		Bauds:   cfg.Probe.Bauds,
		Workers: cfg.Probe.Workers,
		GOOS:    host.goos,
		Logger:  logger,
	}

	if host.ports != nil {
		prober.Ports = host.ports
	} else {
		prober.Ports = NewPortEnumerator(cfg.Probe.Strict, logger)
	}

	return prober
}
