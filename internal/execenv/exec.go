// Package execenv runs a child command with resolved variables layered onto
// the inherited environment.
package execenv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sort"
	"strings"
	"time"

	kverrors "github.com/systmms/keyvars/internal/errors"
	"github.com/systmms/keyvars/internal/logging"
	"github.com/systmms/keyvars/internal/secure"
)

// pipeWaitDelay bounds how long Wait drains output pipes still held open by
// descendants after the child has exited.
const pipeWaitDelay = 2 * time.Second

// Executor runs commands with ephemeral environment variables
type Executor struct {
	logger *logging.Logger
}

// New creates a new executor
func New(logger *logging.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Options configures command execution
type Options struct {
	Command       []string          // Command and arguments to run
	Vars          secure.Vars       // Variables to inject
	Sources       map[string]string // Namespace each variable came from, for Print
	AllowOverride bool              // Inherited variables win over injected ones
	Print         bool              // Print injected names with masked values before running
	WorkingDir    string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the command, relays termination signals to it while it runs
// and waits for it. A command that runs and exits non-zero is reported
// through the exit code, not the error.
func (e *Executor) Run(ctx context.Context, opts Options) (int, error) {
	if len(opts.Command) == 0 {
		return 0, kverrors.UserError{
			Message:    "No command specified",
			Suggestion: "Provide a command after -- (e.g., keyvars exec -s app -- npm start)",
		}
	}
	stdin, stdout, stderr := opts.streams()

	cmdName := opts.Command[0]
	path, err := exec.LookPath(cmdName)
	if err != nil {
		return 0, kverrors.WrapCommandNotFound(cmdName, err)
	}

	env, err := e.buildEnvironment(os.Environ(), opts.Vars, opts.AllowOverride)
	if err != nil {
		return 0, kverrors.UserError{
			Message: "Failed to build environment",
			Details: err.Error(),
			Err:     err,
		}
	}

	if opts.Print {
		if err := e.printEnvironment(stdout, opts.Vars, opts.Sources); err != nil {
			return 0, err
		}
	}

	cmd := exec.CommandContext(ctx, path, opts.Command[1:]...)
	cmd.Env = env
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Dir = opts.WorkingDir
	cmd.WaitDelay = pipeWaitDelay

	if e.logger.DebugEnabled() {
		e.logger.Debug("Executing command: %s", e.redactedCommand(opts))
		e.logger.Debug("Environment variables injected: %d", len(opts.Vars))
	}

	// Registered only for the child's lifetime so keyvars itself keeps the
	// default disposition before and after.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, relayedSignals...)
	defer signal.Stop(sigs)

	if err := cmd.Start(); err != nil {
		return 0, kverrors.CommandError{
			Command:    strings.Join(opts.Command, " "),
			Message:    err.Error(),
			Suggestion: "Check that the command is executable",
		}
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				e.logger.Debug("Forwarding %v to child %d", sig, cmd.Process.Pid)
				if err := cmd.Process.Signal(sig); err != nil {
					e.logger.Debug("Forwarding %v failed: %v", sig, err)
				}
			case <-done:
				return
			}
		}
	}()

	err = cmd.Wait()
	close(done)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitCode(exitErr)
			e.logger.Debug("Command exited with status %d", code)
			return code, nil
		}
		if errors.Is(err, exec.ErrWaitDelay) {
			e.logger.Debug("Command exited; stopped waiting on output held open by its descendants")
			return cmd.ProcessState.ExitCode(), nil
		}
		return 0, kverrors.CommandError{
			Command:    strings.Join(opts.Command, " "),
			Message:    err.Error(),
			Suggestion: "Check the command output above for details",
		}
	}
	return 0, nil
}

func (o Options) streams() (io.Reader, io.Writer, io.Writer) {
	stdin, stdout, stderr := o.Stdin, o.Stdout, o.Stderr
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdin, stdout, stderr
}

// buildEnvironment layers vars onto base. With allowOverride, variables
// already present in base keep their value.
func (e *Executor) buildEnvironment(base []string, vars secure.Vars, allowOverride bool) ([]string, error) {
	envMap := make(map[string]string, len(base)+len(vars))
	for _, kv := range base {
		key, value, ok := strings.Cut(kv, "=")
		if ok {
			envMap[key] = value
		}
	}

	for _, name := range vars.Names() {
		if _, exists := envMap[name]; exists && allowOverride {
			e.logger.Debug("Keeping inherited %s", name)
			continue
		}
		value, err := openString(vars[name])
		if err != nil {
			return nil, fmt.Errorf("failed to open secure buffer for %s: %w", name, err)
		}
		envMap[name] = value
	}

	result := make([]string, 0, len(envMap))
	for key, value := range envMap {
		result = append(result, key+"="+value)
	}
	sort.Strings(result)
	return result, nil
}

// printEnvironment lists the injected variables in name order with values masked
func (e *Executor) printEnvironment(w io.Writer, vars secure.Vars, sources map[string]string) error {
	if len(vars) == 0 {
		_, err := fmt.Fprintln(w, "No environment variables resolved")
		return err
	}

	if _, err := fmt.Fprintf(w, "Resolved %d environment variables:\n", len(vars)); err != nil {
		return err
	}
	for _, name := range vars.Names() {
		value, err := openString(vars[name])
		if err != nil {
			return fmt.Errorf("failed to open secure buffer for %s: %w", name, err)
		}
		line := fmt.Sprintf("  %s=%s", name, maskValue(value))
		if ns, ok := sources[name]; ok {
			line += " (" + ns + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// redactedCommand joins the command line with any injected value scrubbed
func (e *Executor) redactedCommand(opts Options) string {
	values := make([]string, 0, len(opts.Vars))
	for _, name := range opts.Vars.Names() {
		if v, err := openString(opts.Vars[name]); err == nil {
			values = append(values, v)
		}
	}
	return logging.Redact(strings.Join(opts.Command, " "), values)
}

func openString(buf *secure.SecureBuffer) (string, error) {
	locked, err := buf.Open()
	if err != nil {
		return "", err
	}
	defer locked.Destroy()
	return string(locked.Bytes()), nil
}

// maskValue masks a secret value for display
func maskValue(value string) string {
	if len(value) == 0 {
		return "(empty)"
	}

	if len(value) <= 3 {
		return strings.Repeat("*", len(value))
	}

	if len(value) <= 8 {
		return value[:1] + strings.Repeat("*", len(value)-2) + value[len(value)-1:]
	}

	return value[:3] + strings.Repeat("*", 8) + value[len(value)-2:]
}
