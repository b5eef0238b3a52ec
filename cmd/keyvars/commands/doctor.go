package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/systmms/keyvars/internal/config"
	kverrors "github.com/systmms/keyvars/internal/errors"
	"github.com/systmms/keyvars/internal/layers"
	"github.com/systmms/keyvars/internal/naming"
)

// Check statuses
const (
	statusOK   = "ok"
	statusWarn = "warn"
	statusFail = "fail"
)

// probeKey is read from the root namespace to test store access. It is not
// expected to exist.
const probeKey = "KEYVARS_DOCTOR_PROBE"

type check struct {
	Name   string
	Status string
	Detail string
}

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the credential store and listing command",
		Long: `Verify that keyvars can reach its credential store.

This command checks:
- Configuration file validity
- Which backend is in use and whether it answers
- Whether the platform listing command is installed
- How many stored entries belong to keyvars`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks, err := runChecks(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			tbl := table.New("CHECK", "STATUS", "DETAIL").WithWriter(cmd.OutOrStdout())
			failed := 0
			for _, c := range checks {
				tbl.AddRow(c.Name, c.Status, c.Detail)
				if c.Status == statusFail {
					failed++
				}
			}
			tbl.Print()

			if failed > 0 {
				return kverrors.UserError{
					Message:    fmt.Sprintf("%d checks failed", failed),
					Suggestion: "Fix the failing checks above; run with --debug for details",
				}
			}
			return nil
		},
	}

	return cmd
}

func runChecks(ctx context.Context, cfg *config.Config) ([]check, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var checks []check

	if err := cfg.Load(); err != nil {
		return nil, err
	}
	configDetail := cfg.Path
	if _, err := os.Stat(cfg.Path); err != nil {
		configDetail = "defaults (" + cfg.Path + " not found)"
	}
	checks = append(checks, check{"config", statusOK, configDetail})

	backend, err := cfg.OpenBackend()
	if err != nil {
		checks = append(checks, check{"backend", statusFail, err.Error()})
		return checks, nil
	}
	checks = append(checks,
		check{"platform", statusOK, backend.Platform.String()},
		check{"backend", statusOK, backend.Name},
	)

	if backend.Listing != nil {
		listing := check{"listing", statusOK, strings.Join(backend.Listing.Command(), " ")}
		switch {
		case len(backend.Listing.Command()) == 0:
			listing = check{"listing", statusWarn, "no listing command for this platform; ls and exec see nothing"}
		case !backend.Listing.Available():
			listing.Status = statusWarn
			listing.Detail += " (not installed)"
		}
		checks = append(checks, listing)
	} else {
		checks = append(checks, check{"listing", statusOK, "built in"})
	}

	if _, _, err := backend.Store.Get(naming.Root, probeKey); err != nil {
		checks = append(checks, check{"store access", statusFail, kverrors.StoreSuggestion(backend.Name, err)})
	} else {
		checks = append(checks, check{"store access", statusOK, "reachable"})
	}

	raw := backend.Enumerator.Enumerate(ctx)
	kept := layers.FilterValid(raw)
	cfg.Metrics.Enumerated(len(raw), len(kept))
	namespaces := layers.GroupByNamespace(kept).Len()
	checks = append(checks,
		check{"entries", statusOK, fmt.Sprintf("%d in %d namespaces", len(kept), namespaces)},
		check{"foreign entries", statusOK, fmt.Sprintf("%d ignored", len(raw)-len(kept))},
	)

	return checks, nil
}
