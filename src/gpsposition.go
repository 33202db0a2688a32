package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Print the current position from the GPS receiver.
 *
 * Usage:	gpsposition [ options ]
 *
 * Output:	One line, "latitude,longitude" in decimal degrees with six
 *		places, as soon as the receiver reports a valid RMC.
 *
 *		Exit code 0 with a position, 1 when no position arrived
 *		in time or the port could not be used, 2 for usage or
 *		configuration errors.
 *
 * Description:	Only $GPRMC and $GNRMC are looked at.  Other talkers
 *		are ignored, as are sentences with status V.
 *
 *		"--port auto" runs the same search as gpstest and reads
 *		from whichever port it reports as working.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/adrianmo/go-nmea"
	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"
)

var ErrNoPosition = errors.New("no valid position received")

const autoPort = "auto"

func GPSPositionMain() {
	var ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var code = gpsPosition(ctx, os.Args, os.Stdout, os.Stderr, realHost())
	if code != 0 {
		stop()
		os.Exit(code)
	}
}

// Position is one fix taken from an RMC sentence.
type Position struct {
	Latitude  float64
	Longitude float64
}

func (p Position) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Latitude, p.Longitude)
}

/*-------------------------------------------------------------------
 *
 * Name:	ParseRMCPosition
 *
 * Purpose:	Extract a position from one line received from the GPS.
 *
 * Inputs:	line	- Raw line, trailing CR LF allowed.
 *
 * Returns:	Position and true for a $GPRMC or $GNRMC with a good
 *		checksum and status A.  false for anything else.
 *
 *--------------------------------------------------------------------*/

func ParseRMCPosition(line string) (Position, bool) {
	line = strings.TrimSpace(line)

	if !strings.HasPrefix(line, "$GPRMC,") && !strings.HasPrefix(line, "$GNRMC,") {
		return Position{}, false
	}

	var sentence, err = nmea.Parse(line)
	if err != nil {
		return Position{}, false
	}

	var rmc, ok = sentence.(nmea.RMC)
	if !ok || rmc.Validity != nmea.ValidRMC {
		return Position{}, false
	}

	return Position{Latitude: rmc.Latitude, Longitude: rmc.Longitude}, true
}

/*-------------------------------------------------------------------
 *
 * Name:	ReadPosition
 *
 * Purpose:	Read lines until one carries a valid position.
 *
 * Inputs:	port	- Already open.  Not closed here.
 *		timeout	- Give up after this long.  0 means wait forever.
 *		now	- Clock.
 *
 * Returns:	Position, or ErrNoPosition on timeout or cancellation,
 *		or the read error if the device fails.
 *
 *--------------------------------------------------------------------*/

func ReadPosition(ctx context.Context, port SerialPort, timeout time.Duration, now func() time.Time, logger *log.Logger) (Position, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = now().Add(timeout)
	}

	for ctx.Err() == nil && (deadline.IsZero() || now().Before(deadline)) {
		var line, err = port.ReadLine()
		if err != nil {
			return Position{}, fmt.Errorf("reading GPS: %w", err)
		}
		if line == "" {
			continue
		}

		var pos, ok = ParseRMCPosition(line)
		if ok {
			return pos, nil
		}

		logger.Debug("ignored", "line", line)
	}

	return Position{}, ErrNoPosition
}

type gpsPositionOptions struct {
	config          Config
	timeout         time.Duration
	timestampFormat string
	debug           bool
	version         bool
	help            bool
}

func gpsPositionFlags(args []string, stderr io.Writer) (*gpsPositionOptions, error) {
	var flags = pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var configFile = flags.StringP("config", "c", "", "Configuration file.")
	var port = flags.StringP("port", "p", "", "Serial port of the GPS receiver, or \"auto\" to search for it.  Default from configuration, /dev/serial0.")
	var baud = flags.IntP("baud", "b", 0, "Serial port speed.  Default from configuration, 9600.")
	var timeout = flags.DurationP("timeout", "t", 2*time.Minute, "Give up after this long.  0 to wait forever.")
	var timestampFormat = flags.StringP("timestamp-format", "T", "", "Precede the position with a time stamp in strftime format, e.g. \"%H:%M:%S\".")
	var debug = flags.BoolP("debug", "d", false, "Print diagnostics to stderr.")
	var version = flags.Bool("version", false, "Print version and exit.")
	var help = flags.BoolP("help", "h", false, "Display help text.")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "%s - Print latitude,longitude from the GPS receiver.\n", args[0])
		fmt.Fprintf(stderr, "\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args[1:]); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", flags.Arg(0))
	}

	var opts = &gpsPositionOptions{
		timeout:         *timeout,
		timestampFormat: *timestampFormat,
		debug:           *debug,
		version:         *version,
		help:            *help,
	}
	if opts.help {
		flags.Usage()
		return opts, nil
	}
	if opts.version {
		return opts, nil
	}

	if opts.timeout < 0 {
		return nil, fmt.Errorf("--timeout must not be negative, got %s", opts.timeout)
	}
	if opts.timestampFormat != "" {
		if _, err := strftime.New(opts.timestampFormat); err != nil {
			return nil, fmt.Errorf("--timestamp-format: %w", err)
		}
	}

	var cfg, _, err = LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}

	if flags.Changed("port") {
		cfg.GPS.Port = *port
	}
	if flags.Changed("baud") {
		cfg.GPS.Baud = *baud
	}
	if cfg.GPS.Port == "" {
		return nil, errors.New("no GPS port configured")
	}
	if cfg.GPS.Port != autoPort && !baudSupported(cfg.GPS.Baud) {
		return nil, fmt.Errorf("%d: %w", cfg.GPS.Baud, ErrUnsupportedSpeed)
	}

	opts.config = cfg

	return opts, nil
}

func gpsPosition(ctx context.Context, args []string, stdout, stderr io.Writer, host probeHost) int {
	var opts, err = gpsPositionFlags(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", args[0], err)
		return 2
	}

	if opts.help {
		return 0
	}
	if opts.version {
		printVersion(stdout, "gpsposition", opts.debug)
		return 0
	}

	var logger = NewLogger(stderr, "gpsposition", opts.debug)
	var cfg = opts.config
	var now = host.now
	if now == nil {
		now = time.Now
	}

	var devicename, baud = cfg.GPS.Port, cfg.GPS.Baud
	if devicename == autoPort {
		var result = newProber(cfg, host, logger).Probe(ctx)
		if result.Status != StatusWorking {
			logger.Error("no working GPS receiver found", "status", result.Status)
			return 1
		}
		devicename, baud = result.Port, result.Baud
		logger.Debug("found receiver", "port", devicename, "baud", baud)
	}

	var port SerialPort
	port, err = host.open(devicename, baud, cfg.Probe.ReadTimeout)
	if err != nil {
		logger.Error("could not open GPS port", "port", devicename, "baud", baud, "err", err)
		return 1
	}
	defer port.Close() //nolint:errcheck

	var pos Position
	pos, err = ReadPosition(ctx, port, opts.timeout, now, logger)
	if err != nil {
		logger.Error("no position", "port", devicename, "err", err)
		return 1
	}

	if opts.timestampFormat != "" {
		// Validated while parsing the options.
		var formattedTime, _ = strftime.Format(opts.timestampFormat, now())
		fmt.Fprintf(stdout, "%s %s\n", formattedTime, pos)
	} else {
		fmt.Fprintln(stdout, pos)
	}

	return 0
}
