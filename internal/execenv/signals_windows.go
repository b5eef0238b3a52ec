//go:build windows

package execenv

import (
	"os"
	"os/exec"
	"syscall"
)

var relayedSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func exitCode(err *exec.ExitError) int {
	return err.ExitCode()
}
