package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Listen to one serial port at one speed and decide what,
 *		if anything, is on the other end.
 *
 * Description:	Idle -> Opening -> Listening -> one of
 *
 *			SniffFix		valid fix seen, stop right away.
 *			SniffNoFix		window ended, receiver said "no fix".
 *			SniffTimedOut		window ended without a fix.
 *			SniffOpenFailed		device could not be opened.
 *			SniffReadFailed		device failed while listening.
 *
 *		The device is always closed before Sniff returns.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

type SniffState int

const (
	SniffOpenFailed SniffState = iota
	SniffReadFailed
	SniffTimedOut
	SniffNoFix
	SniffFix
)

func (s SniffState) String() string {
	switch s {
	case SniffOpenFailed:
		return "open failed"
	case SniffReadFailed:
		return "read failed"
	case SniffTimedOut:
		return "timed out"
	case SniffNoFix:
		return "no fix"
	case SniffFix:
		return "fix"
	default:
		return "?"
	}
}

// SniffOutcome is the result of one (port, baud) attempt.
type SniffOutcome struct {
	Port  string
	Baud  int
	State SniffState

	// NMEAOK is set once any sentence passed checksum validation.
	// The speed is then known to be right for this port.
	NMEAOK bool

	Sentences int // Lines with a good checksum.
	Rejected  int // NMEA shaped lines with a bad checksum.
}

/*-------------------------------------------------------------------
 *
 * Name:	Status
 *
 * Purpose:	Map the final state to the status reported for the attempt.
 *
 *		Only a device that can't be opened counts as "nothing
 *		answered" (nogps).  Once it opened, losing it part way
 *		through ranks the same as a window that ran out.
 *
 *--------------------------------------------------------------------*/

func (o SniffOutcome) Status() ProbeStatus {
	switch o.State {
	case SniffFix:
		return StatusWorking
	case SniffNoFix:
		return StatusNoFix
	case SniffTimedOut, SniffReadFailed:
		if o.NMEAOK {
			return StatusNoFix
		}
		return StatusNoData
	default:
		return StatusNoGPS
	}
}

type SniffConfig struct {
	Listen      time.Duration // Listening window per attempt.
	Settle      time.Duration // Pause after open before the first read.
	ReadTimeout time.Duration // Upper bound of a single read.
}

type Sniffer struct {
	Open   SerialOpener
	Config SniffConfig
	Logger *log.Logger

	now   func() time.Time
	sleep func(context.Context, time.Duration)
}

func NewSniffer(open SerialOpener, config SniffConfig, logger *log.Logger) *Sniffer {
	return &Sniffer{
		Open:   open,
		Config: config,
		Logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

/*-------------------------------------------------------------------
 *
 * Name:	Sniff
 *
 * Purpose:	Run one attempt.
 *
 * Inputs:	ctx		- Cancellation ends the window early, like the deadline.
 *		devicename	- e.g. /dev/ttyUSB0
 *		baud		- Speed to try.
 *
 * Returns:	Outcome; never an error.  Failures are just another outcome.
 *
 *--------------------------------------------------------------------*/

func (s *Sniffer) Sniff(ctx context.Context, devicename string, baud int) SniffOutcome {
	var logger = s.Logger
	if logger == nil {
		logger = discardLogger()
	}
	var now, sleep = s.now, s.sleep
	if now == nil {
		now = time.Now
	}
	if sleep == nil {
		sleep = sleepContext
	}

	var out = SniffOutcome{Port: devicename, Baud: baud, State: SniffOpenFailed}

	if ctx.Err() != nil {
		out.State = SniffTimedOut
		return out
	}

	var port, err = s.Open(devicename, baud, s.Config.ReadTimeout)
	if err != nil {
		logger.Debug("open failed", "port", devicename, "baud", baud, "err", err)
		return out
	}
	defer func() {
		if err := port.Close(); err != nil {
			logger.Debug("close failed", "port", devicename, "err", err)
		}
	}()

	// Let the device finish its power-up chatter and lock on to the new speed.
	sleep(ctx, s.Config.Settle)

	var sawNoFix = false
	var deadline = now().Add(s.Config.Listen)

	for now().Before(deadline) && ctx.Err() == nil {
		var line, readErr = port.ReadLine()
		if readErr != nil {
			logger.Debug("lost device", "port", devicename, "baud", baud, "err", readErr)
			out.State = SniffReadFailed
			return out
		}

		line = strings.TrimSpace(line)
		if !looksLikeNMEA(line) {
			continue
		}
		if !NMEAChecksumOK(line) {
			out.Rejected++
			continue
		}

		out.NMEAOK = true
		out.Sentences++

		switch InterpretFix(line) {
		case FixValid:
			logger.Debug("fix", "port", devicename, "baud", baud, "sentence", line)
			out.State = SniffFix
			return out
		case FixNone:
			sawNoFix = true
		case FixUnknown:
		}
	}

	out.State = IfThenElse(sawNoFix, SniffNoFix, SniffTimedOut)

	logger.Debug("window closed", "port", devicename, "baud", baud,
		"state", out.State, "sentences", out.Sentences, "rejected", out.Rejected)

	return out
}

// sleepContext is time.Sleep that wakes early on cancellation.
func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	var timer = time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
