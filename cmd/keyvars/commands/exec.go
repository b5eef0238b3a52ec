package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/systmms/keyvars/internal/config"
	kverrors "github.com/systmms/keyvars/internal/errors"
	"github.com/systmms/keyvars/internal/execenv"
	"github.com/systmms/keyvars/internal/secure"
)

func NewExecCommand(cfg *config.Config) *cobra.Command {
	var (
		sc            scope
		printVars     bool
		allowOverride bool
		workingDir    string
	)

	cmd := &cobra.Command{
		Use:   "exec [-s service] [-e env] -- <command> [args...]",
		Short: "Run a command with stored variables in its environment",
		Long: `Run a command with the variables of a scope injected into its
environment. Layers are merged root first, then the service, then the
environment; the last layer defining a name wins. Values are never written
to disk.

The command should be separated from keyvars flags with '--'. keyvars
exits with the command's exit status.

Examples:
  keyvars exec -s app -e dev -- npm start
  keyvars exec --print -s app -- env`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sc.namespace(); err != nil {
				return err
			}

			backend, err := openBackend(cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("allow-override") {
				allowOverride = cfg.Definition.Exec.AllowOverride
			}

			ctx := context.Background()
			resolver := newResolver(cfg, backend)
			res, err := resolver.Resolve(ctx, sc.service, sc.env)
			if err != nil {
				return storeFailure(backend.Name, "Failed to resolve variables", err)
			}

			var sources map[string]string
			if printVars {
				sources = res.Sources
			}

			vars, err := secure.SealAll(res.Vars)
			if err != nil {
				return kverrors.UserError{
					Message:    "Failed to secure resolved variables",
					Details:    err.Error(),
					Suggestion: "Try running with --debug for more information",
					Err:        err,
				}
			}
			defer vars.Destroy()

			cfg.Logger.Debug("Resolved %d variables for %s", len(vars), scopeLabel(sc))
			cfg.Metrics.Injected(len(vars))

			code, err := execenv.New(cfg.Logger).Run(ctx, execenv.Options{
				Command:       args,
				Vars:          vars,
				Sources:       sources,
				AllowOverride: allowOverride,
				Print:         printVars,
				WorkingDir:    workingDir,
				Stdin:         cmd.InOrStdin(),
				Stdout:        cmd.OutOrStdout(),
				Stderr:        cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			if code != 0 {
				return ExitCodeError{Code: code}
			}
			return nil
		},
	}

	sc.register(cmd)
	cmd.Flags().BoolVar(&printVars, "print", false, "Print injected variables (values masked) before running")
	cmd.Flags().BoolVar(&allowOverride, "allow-override", false, "Let variables already in the environment win over stored ones")
	cmd.Flags().StringVar(&workingDir, "working-dir", "", "Working directory for the command")
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func scopeLabel(sc scope) string {
	ns, err := sc.namespace()
	if err != nil {
		return "?"
	}
	return ns
}
