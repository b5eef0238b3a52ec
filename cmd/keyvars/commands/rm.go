package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systmms/keyvars/internal/config"
	"github.com/systmms/keyvars/internal/naming"
)

func NewRmCommand(cfg *config.Config) *cobra.Command {
	var sc scope

	cmd := &cobra.Command{
		Use:     "rm [-s service] [-e env] KEY",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a stored variable",
		Args:    cobra.ExactArgs(1),
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
			existed, err := backend.Store.Delete(ns, key)
			if err != nil {
				return storeFailure(backend.Name, fmt.Sprintf("Failed to remove %s", key), err)
			}
			if !existed {
				cfg.Logger.Warn("%s was not set in %s", key, ns)
				return nil
			}

			cfg.Logger.Info("Removed %s from %s", key, ns)
			return nil
		},
	}

	sc.register(cmd)
	return cmd
}
