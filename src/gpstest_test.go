package digihub

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyConfig keeps a digihub.yaml on the test machine out of the picture.
func emptyConfig(t *testing.T) string {
	t.Helper()

	var path = filepath.Join(t.TempDir(), "digihub.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	return path
}

func runGPSTest(t *testing.T, host probeHost, args ...string) (string, string, int) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	var argv = append([]string{"gpstest", "--config", emptyConfig(t)}, args...)
	var code = gpsTest(context.Background(), argv, &stdout, &stderr, host)

	return stdout.String(), stderr.String(), code
}

func TestGPSTestScenarios(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(dev *fakeDevices)
		ports    []string
		wantOut  string
		wantCode int
	}{
		{
			name:     "receiver with a fix",
			setup:    func(dev *fakeDevices) { dev.script("/dev/ttyUSB0", 9600, gsv, rmcFix) },
			ports:    []string{"/dev/ttyUSB0"},
			wantOut:  "/dev/ttyUSB0,working\n",
			wantCode: 0,
		},
		{
			name:     "receiver without a fix",
			setup:    func(dev *fakeDevices) { dev.script("/dev/ttyACM0", 4800, ggaNoFix) },
			ports:    []string{"/dev/ttyUSB0", "/dev/ttyACM0"},
			wantOut:  "/dev/ttyACM0,nofix\n",
			wantCode: 1,
		},
		{
			name:     "device that says nothing",
			setup:    func(dev *fakeDevices) {},
			ports:    []string{"/dev/ttyUSB0"},
			wantOut:  "nodata,nodata\n",
			wantCode: 2,
		},
		{
			name:     "no devices",
			setup:    func(dev *fakeDevices) {},
			ports:    nil,
			wantOut:  "nogps,nogps\n",
			wantCode: 3,
		},
		{
			name:     "device that can't be opened",
			setup:    func(dev *fakeDevices) { dev.missing["/dev/ttyUSB0"] = true },
			ports:    []string{"/dev/ttyUSB0"},
			wantOut:  "nogps,nogps\n",
			wantCode: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dev = newFakeDevices(newFakeClock())
			tt.setup(dev)

			var stdout, stderr, code = runGPSTest(t, dev.host(tt.ports...))

			assert.Equal(t, tt.wantOut, stdout)
			assert.Equal(t, tt.wantCode, code)
			assert.Empty(t, stderr)
			assert.True(t, dev.balanced())
		})
	}
}

func TestGPSTestDebugOnlyAffectsStderr(t *testing.T) {
	var run = func(args ...string) (string, string, int) {
		var dev = newFakeDevices(newFakeClock())
		dev.script("/dev/ttyUSB1", 19200, rmcNoFix)
		return runGPSTest(t, dev.host("/dev/ttyUSB0", "/dev/ttyUSB1"), args...)
	}

	var quietOut, quietErr, quietCode = run()
	var debugOut, debugErr, debugCode = run("--debug")

	assert.Equal(t, quietOut, debugOut)
	assert.Equal(t, quietCode, debugCode)
	assert.Equal(t, "/dev/ttyUSB1,nofix\n", debugOut)
	assert.Empty(t, quietErr)
	assert.Contains(t, debugErr, "Trying /dev/ttyUSB0@4800")
	assert.Contains(t, debugErr, "Trying /dev/ttyUSB1@19200")
	assert.NotContains(t, debugErr, "Trying /dev/ttyUSB1@38400")
}

func TestGPSTestRepeatable(t *testing.T) {
	var run = func() (string, int) {
		var dev = newFakeDevices(newFakeClock())
		dev.script("/dev/ttyACM0", 115200, rmcFix)
		var out, _, code = runGPSTest(t, dev.host("/dev/ttyUSB0", "/dev/ttyACM0"))
		return out, code
	}

	var out1, code1 = run()
	var out2, code2 = run()

	assert.Equal(t, "/dev/ttyACM0,working\n", out1)
	assert.Equal(t, out1, out2)
	assert.Equal(t, code1, code2)
}

func TestGPSTestBaudsFlag(t *testing.T) {
	var dev = newFakeDevices(newFakeClock())
	dev.script("/dev/ttyUSB0", 4800, rmcFix)

	var out, _, code = runGPSTest(t, dev.host("/dev/ttyUSB0"), "--bauds", "9600,38400")

	assert.Equal(t, "nodata,nodata\n", out)
	assert.Equal(t, ExitNoData, code)
	assert.Equal(t, []string{"/dev/ttyUSB0@9600", "/dev/ttyUSB0@38400"}, dev.opened())
}

func TestGPSTestUnsupportedHost(t *testing.T) {
	var dev = newFakeDevices(newFakeClock())
	dev.script("/dev/ttyUSB0", 4800, rmcFix)
	var host = dev.host("/dev/ttyUSB0")
	host.goos = "windows"

	var out, _, code = runGPSTest(t, host)

	assert.Equal(t, "nogps,nogps\n", out)
	assert.Equal(t, ExitNoGPS, code)
	assert.Empty(t, dev.opened())
}

func TestGPSTestConfigurationErrors(t *testing.T) {
	var badYAML = filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("probe: [not, a, map"), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus"}},
		{"listen not a number", []string{"--listen", "soon"}},
		{"listen zero", []string{"--listen", "0"}},
		{"unsupported speed", []string{"--bauds", "1234"}},
		{"no workers", []string{"--workers", "0"}},
		{"stray argument", []string{"/dev/ttyUSB0"}},
		{"missing config file", []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}},
		{"broken config file", []string{"--config", badYAML}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dev = newFakeDevices(newFakeClock())

			var out, errOut, code = runGPSTest(t, dev.host("/dev/ttyUSB0"), tt.args...)

			assert.Equal(t, ExitConfig, code)
			assert.Empty(t, out)
			assert.NotEmpty(t, errOut)
			assert.Empty(t, dev.opened())
		})
	}
}

func TestGPSTestHelp(t *testing.T) {
	var dev = newFakeDevices(newFakeClock())

	var out, errOut, code = runGPSTest(t, dev.host("/dev/ttyUSB0"), "--help")

	assert.Equal(t, 0, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "nodata,nodata")
	assert.Empty(t, dev.opened())
}

func TestGPSTestVersion(t *testing.T) {
	var dev = newFakeDevices(newFakeClock())

	var out, _, code = runGPSTest(t, dev.host("/dev/ttyUSB0"), "--version")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "DigiHub gpstest - Version")
	assert.Empty(t, dev.opened())
}
