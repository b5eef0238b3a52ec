package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/systmms/keyvars/internal/config"
	kverrors "github.com/systmms/keyvars/internal/errors"
	"github.com/systmms/keyvars/internal/logging"
	"github.com/systmms/keyvars/internal/naming"
)

func NewSetCommand(cfg *config.Config) *cobra.Command {
	var sc scope

	cmd := &cobra.Command{
		Use:   "set [-s service] [-e env] KEY [VALUE]",
		Short: "Store a variable",
		Long: `Store a variable in the credential store.

Without VALUE the value is read from stdin. On a terminal keyvars prompts
for it without echo, which keeps it out of shell history.

Examples:
  keyvars set EDITOR vim
  keyvars set -s app API_KEY
  echo "$TOKEN" | keyvars set -s app -e dev API_KEY`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := naming.ValidateKey(key); err != nil {
				return err
			}
			ns, err := sc.namespace()
			if err != nil {
				return err
			}

			var value string
			if len(args) == 2 {
				value = args[1]
			} else {
				value, err = readValue(cmd, key)
				if err != nil {
					return err
				}
			}

			backend, err := openBackend(cfg)
			if err != nil {
				return err
			}
			cfg.Logger.Debug("Writing %s=%s to %s", key, logging.Secret(value), ns)
			if err := backend.Store.Set(ns, key, value); err != nil {
				return storeFailure(backend.Name, fmt.Sprintf("Failed to store %s", key), err)
			}

			cfg.Logger.Info("Stored %s in %s", key, ns)
			return nil
		},
	}

	sc.register(cmd)
	return cmd
}

// readValue prompts on a terminal, otherwise reads stdin up to EOF and
// drops one trailing line ending
func readValue(cmd *cobra.Command, key string) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Value for %s: ", key)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", kverrors.UserError{Message: "Failed to read value", Details: err.Error(), Err: err}
		}
		return string(raw), nil
	}

	raw, err := io.ReadAll(bufio.NewReader(in))
	if err != nil {
		return "", kverrors.UserError{Message: "Failed to read value from stdin", Details: err.Error(), Err: err}
	}
	value := string(raw)
	if trimmed, ok := strings.CutSuffix(value, "\n"); ok {
		value = strings.TrimSuffix(trimmed, "\r")
	}
	return value, nil
}
