package digihub

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// CaptureStdout runs command with os.Stdout pointing at a pipe and returns
// what it printed.  For the cmd/ tests, whose main functions only know os.Stdout.
func CaptureStdout(t *testing.T, command func()) string {
	t.Helper()

	var r, w, err = os.Pipe()
	require.NoError(t, err)

	var saved = os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = saved })

	// Drain while the command runs so a long output can't fill the pipe.
	var captured = make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		captured <- buf.Bytes()
	}()

	command()

	os.Stdout = saved
	require.NoError(t, w.Close())

	var out = <-captured
	require.NoError(t, r.Close())

	return string(out)
}
