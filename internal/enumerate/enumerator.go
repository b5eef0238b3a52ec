package enumerate

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/systmms/keyvars/internal/logging"
	"github.com/systmms/keyvars/internal/naming"
)

// DefaultTimeout bounds one run of the listing command.
const DefaultTimeout = 10 * time.Second

// Enumerator lists the entries currently held by a store.
type Enumerator interface {
	Enumerate(ctx context.Context) []naming.Entry
}

// CommandEnumerator runs a platform listing command and parses its stdout.
type CommandEnumerator struct {
	platform Platform
	command  []string
	parser   Parser
	runner   Runner
	timeout  time.Duration
	logger   *logging.Logger
}

// Options configures a CommandEnumerator. Zero values select the platform
// defaults.
type Options struct {
	Command []string
	Runner  Runner
	Timeout time.Duration
}

// NewCommandEnumerator creates an enumerator for platform.
func NewCommandEnumerator(platform Platform, opts Options, logger *logging.Logger) *CommandEnumerator {
	e := &CommandEnumerator{
		platform: platform,
		command:  opts.Command,
		parser:   platform.Parser(),
		runner:   opts.Runner,
		timeout:  opts.Timeout,
		logger:   logger,
	}
	if len(e.command) == 0 {
		e.command = platform.DefaultCommand()
	}
	if e.runner == nil {
		e.runner = OSRunner{}
	}
	if e.timeout <= 0 {
		e.timeout = DefaultTimeout
	}
	return e
}

// Platform returns the platform this enumerator parses for.
func (e *CommandEnumerator) Platform() Platform {
	return e.platform
}

// Command returns the listing argv, or nil when the platform has none.
func (e *CommandEnumerator) Command() []string {
	return e.command
}

// Available reports whether the listing command can be found in PATH.
func (e *CommandEnumerator) Available() bool {
	if len(e.command) == 0 {
		return false
	}
	_, err := exec.LookPath(e.command[0])
	return err == nil
}

// Enumerate runs the listing command. Any failure yields no entries.
func (e *CommandEnumerator) Enumerate(ctx context.Context) []naming.Entry {
	if len(e.command) == 0 {
		e.logger.Debug("No listing command for platform %s", e.platform)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	e.logger.Debug("Listing credentials: %s", strings.Join(e.command, " "))
	output, err := e.runner.Execute(ctx, e.command[0], e.command[1:]...)
	if err != nil {
		e.logger.Debug("Listing command failed: %v (%s)", err, strings.TrimSpace(string(output)))
		return nil
	}

	entries := e.parser.Parse(string(output))
	e.logger.Debug("Parsed %d credential records", len(entries))
	return entries
}
