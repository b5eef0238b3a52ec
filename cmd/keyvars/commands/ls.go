package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/systmms/keyvars/internal/config"
	"github.com/systmms/keyvars/internal/layers"
	"github.com/systmms/keyvars/internal/tree"
)

func NewLsCommand(cfg *config.Config) *cobra.Command {
	var sc scope

	cmd := &cobra.Command{
		Use:     "ls [-s service] [-e env]",
		Aliases: []string{"list"},
		Short:   "Show stored variable names as a tree",
		Long: `Show the names of stored variables. Values are never printed.

Without -s every namespace is listed. With -s (and -e) only the layers
that apply to that scope are shown, and names overridden by a later layer
are struck through.

Examples:
  keyvars ls
  keyvars ls -s app -e dev`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate before touching the store
			if _, err := sc.namespace(); err != nil {
				return err
			}

			backend, err := openBackend(cfg)
			if err != nil {
				return err
			}
			resolver := newResolver(cfg, backend)
			ctx := context.Background()

			var views []layers.View
			if sc.service == "" {
				views = resolver.All(ctx)
				if len(views) == 0 {
					cfg.Logger.Warn("No variables stored")
					return nil
				}
			} else {
				views, err = resolver.Layered(ctx, sc.service, sc.env)
				if err != nil {
					return err
				}
			}
			return tree.Render(cmd.OutOrStdout(), views)
		},
	}

	sc.register(cmd)
	return cmd
}
