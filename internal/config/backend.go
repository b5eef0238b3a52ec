package config

import (
	"os"
	"runtime"

	"github.com/99designs/keyring"
	"golang.org/x/term"

	"github.com/systmms/keyvars/internal/enumerate"
	kverrors "github.com/systmms/keyvars/internal/errors"
	"github.com/systmms/keyvars/internal/metrics"
	"github.com/systmms/keyvars/internal/store"
)

// Backend is an opened store and the enumerator that lists it
type Backend struct {
	Name       string
	Store      store.Store
	Enumerator enumerate.Enumerator
	Platform   enumerate.Platform

	// Listing is the platform listing command, nil for the file backend
	Listing *enumerate.CommandEnumerator
}

// OpenBackend opens the configured store wrapped with call counters. The
// system backend is listed with the platform command; the file backend
// lists itself.
func (c *Config) OpenBackend() (*Backend, error) {
	if c.Metrics == nil {
		c.Metrics = metrics.New()
	}
	if c.Backend != nil {
		return c.Backend, nil
	}
	def := c.Definition
	if def == nil {
		def = Default()
	}
	platform := enumerate.Detect(runtime.GOOS)

	switch def.Backend {
	case store.BackendSystem:
		listing := enumerate.NewCommandEnumerator(platform, enumerate.Options{
			Command: def.CommandFor(platform),
			Timeout: def.EnumerationTimeout(),
		}, c.Logger)
		return &Backend{
			Name:       def.Backend,
			Store:      store.NewInstrumented(store.NewSystemStore(), c.Metrics),
			Enumerator: listing,
			Platform:   platform,
			Listing:    listing,
		}, nil

	case store.BackendFile:
		prompt, err := c.filePrompt()
		if err != nil {
			return nil, err
		}
		fileStore, err := store.OpenFileStore(def.File.Dir, prompt, c.Logger)
		if err != nil {
			return nil, kverrors.UserError{
				Message:    "Failed to open file keyring",
				Details:    err.Error(),
				Suggestion: kverrors.StoreSuggestion(store.BackendFile, err),
				Err:        err,
			}
		}
		return &Backend{
			Name:       def.Backend,
			Store:      store.NewInstrumented(fileStore, c.Metrics),
			Enumerator: fileStore,
			Platform:   platform,
		}, nil
	}

	return nil, kverrors.ConfigError{
		Field:      "backend",
		Value:      def.Backend,
		Message:    "unknown backend",
		Suggestion: "Use 'system' or 'file'",
	}
}

// filePrompt returns the passphrase source for the file keyring:
// KEYVARS_FILE_PASSWORD, else a terminal prompt.
func (c *Config) filePrompt() (keyring.PromptFunc, error) {
	if pass, ok := c.lookup(EnvFilePassword); ok {
		return keyring.FixedStringPrompt(pass), nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return keyring.TerminalPrompt, nil
	}
	return nil, kverrors.ConfigError{
		Field:      EnvFilePassword,
		Message:    "the file backend needs a passphrase and stdin is not a terminal",
		Suggestion: "Set " + EnvFilePassword + " or run keyvars from a terminal",
	}
}
