package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by stores when an item does not exist
var ErrNotFound = errors.New("secret not found")

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ValidationError reports an identifier that does not match its grammar
type ValidationError struct {
	Kind    string // "service", "environment" or "key"
	Value   string
	Allowed string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: must contain only %s", e.Kind, e.Value, e.Allowed)
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// StoreError wraps a failed call to the underlying credential store
type StoreError struct {
	Op        string // "set", "get", "delete"
	Namespace string
	Name      string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store %s failed for %s/%s: %v", e.Op, e.Namespace, e.Name, e.Err)
	}
	return fmt.Sprintf("store %s failed for %s/%s", e.Op, e.Namespace, e.Name)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// CommandError represents a command execution error
type CommandError struct {
	Command    string
	Message    string
	Suggestion string
}

func (e CommandError) Error() string {
	msg := fmt.Sprintf("Command '%s' failed", e.Command)
	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// WrapCommandNotFound wraps command not found errors with helpful suggestions
func WrapCommandNotFound(command string, err error) error {
	suggestions := map[string]string{
		"npm":    "Install Node.js from https://nodejs.org/",
		"python": "Install Python from https://python.org/",
		"go":     "Install Go from https://golang.org/",
		"docker": "Install Docker from https://docker.com/",
		"git":    "Install Git from https://git-scm.com/",
	}

	suggestion := suggestions[command]
	if suggestion == "" {
		suggestion = fmt.Sprintf("Make sure '%s' is installed and in your PATH", command)
	}

	return CommandError{
		Command:    command,
		Message:    "command not found",
		Suggestion: suggestion,
	}
}

// StoreSuggestion returns a remediation hint for a failed store call
func StoreSuggestion(backend string, err error) string {
	if err == nil {
		return ""
	}
	errStr := strings.ToLower(err.Error())

	switch backend {
	case "system":
		if strings.Contains(errStr, "dbus") || strings.Contains(errStr, "secret service") {
			return "Start a Secret Service provider (gnome-keyring, KeePassXC) or set 'backend: file' in the config"
		}
		if strings.Contains(errStr, "user canceled") || strings.Contains(errStr, "denied") {
			return "Allow keyvars access when the keychain prompts, or unlock the keychain first"
		}
	case "file":
		if strings.Contains(errStr, "aes.keyunwrap") || strings.Contains(errStr, "integrity check failed") {
			return "The file keyring passphrase is wrong. Check KEYVARS_FILE_PASSWORD"
		}
		if strings.Contains(errStr, "permission denied") {
			return "Check permissions on the file keyring directory"
		}
	}

	return "Run 'keyvars doctor' to check the credential store"
}
