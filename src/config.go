package digihub

/*------------------------------------------------------------------
 *
 * Purpose:   	Read the station configuration file.
 *
 * Description:	A small YAML file, digihub.yaml.  Every setting has a
 *		default so the file is optional, and command line flags
 *		override whatever it says.
 *
 *		gps:
 *		  port: /dev/serial0
 *		  baud: 9600
 *		probe:
 *		  listen: 4s
 *		  bauds: [4800, 9600, 19200, 38400, 57600, 115200]
 *		  settle: 100ms
 *		  read_timeout: 200ms
 *		  workers: 1
 *		  strict: true
 *		aprs:
 *		  strip_portable: true
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GPS   GPSConfig   `yaml:"gps"`
	Probe ProbeConfig `yaml:"probe"`
	APRS  APRSConfig  `yaml:"aprs"`
}

// GPSConfig names the receiver used by gpsposition.
type GPSConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

type ProbeConfig struct {
	Listen      time.Duration `yaml:"listen"`
	Bauds       []int         `yaml:"bauds"`
	Settle      time.Duration `yaml:"settle"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	Workers     int           `yaml:"workers"`
	Strict      bool          `yaml:"strict"`
}

type APRSConfig struct {
	StripPortable bool `yaml:"strip_portable"`
}

func DefaultConfig() Config {
	return Config{
		GPS: GPSConfig{
			Port: "/dev/serial0",
			Baud: 9600,
		},
		Probe: ProbeConfig{
			Listen:      4 * time.Second,
			Bauds:       append([]int(nil), DefaultBauds...),
			Settle:      100 * time.Millisecond,
			ReadTimeout: 200 * time.Millisecond,
			Workers:     1,
			Strict:      true,
		},
		APRS: APRSConfig{
			StripPortable: true,
		},
	}
}

// The first of these which exists is used when no file is named explicitly.
var configSearchLocations = []string{
	"digihub.yaml", // Current working directory
	"/etc/digihub/digihub.yaml",
	"/usr/local/share/digihub/digihub.yaml",
	"/usr/share/digihub/digihub.yaml",
}

/*-------------------------------------------------------------------
 *
 * Name:	LoadConfig
 *
 * Purpose:	Defaults, overlaid by the configuration file if there is one.
 *
 * Inputs:	path	- Explicit file name.  Must exist.
 *			  Empty means try the search locations; finding
 *			  none of them is fine.
 *
 * Returns:	Configuration, name of the file actually read ("" if none), error.
 *
 *--------------------------------------------------------------------*/

func LoadConfig(path string) (Config, string, error) {
	var cfg = DefaultConfig()

	if path == "" {
		for _, location := range configSearchLocations {
			if _, err := os.Stat(location); err == nil {
				path = location
				break
			}
		}
		if path == "" {
			return cfg, "", nil
		}
	}

	var data, err = os.ReadFile(path) //nolint:gosec
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, "", fmt.Errorf("configuration file %s does not exist", path)
		}
		return cfg, "", fmt.Errorf("reading configuration file: %w", err)
	}

	// Unmarshal over the defaults; keys missing from the file keep their default.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, path, fmt.Errorf("parsing configuration file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, path, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, path, nil
}

// Validate catches values the probe can't work with.
func (c Config) Validate() error {
	var errs []error

	if c.GPS.Baud != 0 && !baudSupported(c.GPS.Baud) {
		errs = append(errs, fmt.Errorf("gps.baud %d is not a supported speed", c.GPS.Baud))
	}

	if c.Probe.Listen <= 0 {
		errs = append(errs, fmt.Errorf("probe.listen must be positive, got %s", c.Probe.Listen))
	}
	if len(c.Probe.Bauds) == 0 {
		errs = append(errs, errors.New("probe.bauds must list at least one speed"))
	}
	for _, b := range c.Probe.Bauds {
		if !baudSupported(b) {
			errs = append(errs, fmt.Errorf("probe.bauds: %d is not a supported speed", b))
		}
	}
	if c.Probe.Settle < 0 {
		errs = append(errs, fmt.Errorf("probe.settle must not be negative, got %s", c.Probe.Settle))
	}
	if c.Probe.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("probe.read_timeout must be positive, got %s", c.Probe.ReadTimeout))
	}
	if c.Probe.Workers < 1 {
		errs = append(errs, fmt.Errorf("probe.workers must be at least 1, got %d", c.Probe.Workers))
	}

	return errors.Join(errs...)
}

func (c Config) SniffConfig() SniffConfig {
	return SniffConfig{
		Listen:      c.Probe.Listen,
		Settle:      c.Probe.Settle,
		ReadTimeout: c.Probe.ReadTimeout,
	}
}
