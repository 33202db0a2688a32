package main

import (
	"os"
	"testing"

	digihub "github.com/kq4zci/digihub/src"
	"github.com/stretchr/testify/assert"
)

func Test_Version(t *testing.T) {
	os.Args = []string{"gpsposition", "--version"}

	assert.Contains(t, digihub.CaptureStdout(t, main), "DigiHub gpsposition - Version")
}
