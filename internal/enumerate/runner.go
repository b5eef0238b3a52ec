package enumerate

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes a listing command. It exists so tests can script output.
type Runner interface {
	// Execute runs name with args and returns everything it wrote to stdout
	// and stderr, interleaved in write order.
	Execute(ctx context.Context, name string, args ...string) (output []byte, err error)
}

// OSRunner runs commands with os/exec.
type OSRunner struct{}

// Execute runs an actual process. Both streams share one pipe, since
// secret-tool prints record headers on stdout and attributes on stderr.
func (OSRunner) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}
