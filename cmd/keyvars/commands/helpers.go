package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systmms/keyvars/internal/config"
	kverrors "github.com/systmms/keyvars/internal/errors"
	"github.com/systmms/keyvars/internal/naming"
	"github.com/systmms/keyvars/internal/resolve"
)

// ExitCodeError carries a child command's exit status up to main
type ExitCodeError struct {
	Code int
}

func (e ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// scope holds the -s/-e flags shared by most commands
type scope struct {
	service string
	env     string
}

func (s *scope) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.service, "service", "s", "", "Service namespace (omit for the root namespace)")
	cmd.Flags().StringVarP(&s.env, "env", "e", "", "Environment within the service")
}

// namespace resolves the exact namespace the flags address
func (s *scope) namespace() (string, error) {
	return naming.BuildNamespace(s.service, s.env)
}

// openBackend loads configuration and opens the configured store
func openBackend(cfg *config.Config) (*config.Backend, error) {
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	return cfg.OpenBackend()
}

func newResolver(cfg *config.Config, backend *config.Backend) *resolve.Resolver {
	return resolve.New(backend.Store, backend.Enumerator, cfg.Logger, cfg.Metrics)
}

// storeFailure turns a store error into a UserError with a remediation hint
func storeFailure(backend, message string, err error) error {
	var storeErr *kverrors.StoreError
	if !errors.As(err, &storeErr) {
		return err
	}
	return kverrors.UserError{
		Message:    message,
		Details:    err.Error(),
		Suggestion: kverrors.StoreSuggestion(backend, err),
		Err:        err,
	}
}
