package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systmms/keyvars/internal/config"
	kverrors "github.com/systmms/keyvars/internal/errors"
	"github.com/systmms/keyvars/internal/naming"
)

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var sc scope

	cmd := &cobra.Command{
		Use:   "get [-s service] [-e env] KEY",
		Short: "Print a single stored value",
		Long: `Print the value stored under KEY in exactly the given namespace.
Layers are not merged; use exec to see the effective value.

Examples:
  keyvars get EDITOR
  export TOKEN=$(keyvars get -s app -e prod API_KEY)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := naming.ValidateKey(key); err != nil {
				return err
			}
			ns, err := sc.namespace()
			if err != nil {
				return err
			}

			backend, err := openBackend(cfg)
			if err != nil {
				return err
			}
			value, found, err := backend.Store.Get(ns, key)
			if err != nil {
				return storeFailure(backend.Name, fmt.Sprintf("Failed to read %s", key), err)
			}
			if !found {
				return kverrors.UserError{
					Message:    fmt.Sprintf("%s is not set in %s", key, ns),
					Suggestion: "Run 'keyvars ls' to see stored variables",
					Err:        kverrors.ErrNotFound,
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), value)
			return nil
		},
	}

	sc.register(cmd)
	return cmd
}
