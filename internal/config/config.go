// Package config loads the optional keyvars configuration file.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/systmms/keyvars/internal/enumerate"
	kverrors "github.com/systmms/keyvars/internal/errors"
	"github.com/systmms/keyvars/internal/logging"
	"github.com/systmms/keyvars/internal/metrics"
	"github.com/systmms/keyvars/internal/store"
)

//go:embed schema.json
var schemaJSON []byte

// Environment variables read at load time
const (
	EnvBackend      = "KEYVARS_BACKEND"
	EnvFilePassword = "KEYVARS_FILE_PASSWORD"
)

// DefaultTimeoutMs bounds one run of the listing command
const DefaultTimeoutMs = 10000

// Config holds the runtime configuration
type Config struct {
	Path       string
	Logger     *logging.Logger
	Metrics    *metrics.Metrics
	Definition *Definition

	// LookupEnv reads the environment; os.LookupEnv when nil
	LookupEnv func(string) (string, bool)

	// Backend, when set, is returned by OpenBackend as is
	Backend *Backend
}

// Definition is the config.yaml structure
type Definition struct {
	Version     int               `yaml:"version"`
	Backend     string            `yaml:"backend"`
	File        FileConfig        `yaml:"file"`
	Enumeration EnumerationConfig `yaml:"enumeration"`
	Exec        ExecConfig        `yaml:"exec"`
}

// FileConfig configures the encrypted file backend
type FileConfig struct {
	Dir string `yaml:"dir"`
}

// EnumerationConfig configures the platform listing command
type EnumerationConfig struct {
	TimeoutMs int                 `yaml:"timeout_ms"`
	Commands  map[string][]string `yaml:"commands"`
}

// ExecConfig holds defaults for keyvars exec
type ExecConfig struct {
	AllowOverride bool `yaml:"allow_override"`
}

// DefaultPath is config.yaml under the XDG config directory
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "keyvars", "config.yaml")
}

// DefaultFileDir is where the file backend keeps its keyring
func DefaultFileDir() string {
	return filepath.Join(xdg.DataHome, "keyvars", "keyring")
}

// Default returns the definition used when no file exists
func Default() *Definition {
	d := &Definition{}
	d.applyDefaults()
	return d
}

// Load reads and validates the file at Path, then applies environment
// overrides. A missing file is not an error.
func (c *Config) Load() error {
	if c.Path == "" {
		c.Path = DefaultPath()
	}

	data, err := os.ReadFile(c.Path)
	var def *Definition
	switch {
	case err == nil:
		def, err = Parse(data)
		if err != nil {
			return err
		}
		c.Logger.Debug("Loaded configuration from %s", c.Path)
	case os.IsNotExist(err):
		c.Logger.Debug("No configuration at %s, using defaults", c.Path)
		def = Default()
	default:
		return kverrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	if err := def.applyEnv(c.lookup); err != nil {
		return err
	}
	c.Definition = def
	return nil
}

// Parse decodes and validates a configuration document
func Parse(data []byte) (*Definition, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, kverrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters",
		}
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, kverrors.ConfigError{
			Message:    "configuration does not match the expected structure",
			Suggestion: "Compare the file against the documented keys",
		}
	}

	if def.Version != 0 {
		return nil, kverrors.ConfigError{
			Field:      "version",
			Value:      def.Version,
			Message:    "unsupported configuration version",
			Suggestion: "Set 'version: 0' at the top of your config.yaml",
		}
	}

	def.applyDefaults()
	return &def, nil
}

func validateSchema(doc map[string]interface{}) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := result.Errors()
	messages := make([]string, 0, len(errs))
	for _, desc := range errs {
		messages = append(messages, desc.String())
	}
	return kverrors.ConfigError{
		Field:      errs[0].Field(),
		Message:    strings.Join(messages, "; "),
		Suggestion: "Fix the listed keys in config.yaml",
	}
}

func (d *Definition) applyDefaults() {
	if d.Backend == "" {
		d.Backend = store.BackendSystem
	}
	if d.File.Dir == "" {
		d.File.Dir = DefaultFileDir()
	}
	if d.Enumeration.TimeoutMs <= 0 {
		d.Enumeration.TimeoutMs = DefaultTimeoutMs
	}
}

func (d *Definition) applyEnv(lookup func(string) (string, bool)) error {
	backend, ok := lookup(EnvBackend)
	if !ok || backend == "" {
		return nil
	}
	if backend != store.BackendSystem && backend != store.BackendFile {
		return kverrors.ConfigError{
			Field:      EnvBackend,
			Value:      backend,
			Message:    "unknown backend",
			Suggestion: "Use 'system' or 'file'",
		}
	}
	d.Backend = backend
	return nil
}

// EnumerationTimeout returns the listing command timeout
func (d *Definition) EnumerationTimeout() time.Duration {
	return time.Duration(d.Enumeration.TimeoutMs) * time.Millisecond
}

// CommandFor returns the configured listing argv for p, or nil for the
// platform default
func (d *Definition) CommandFor(p enumerate.Platform) []string {
	return d.Enumeration.Commands[p.String()]
}

func (c *Config) lookup(key string) (string, bool) {
	if c.LookupEnv != nil {
		return c.LookupEnv(key)
	}
	return os.LookupEnv(key)
}
