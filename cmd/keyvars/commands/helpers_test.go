package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/systmms/keyvars/internal/config"
	"github.com/systmms/keyvars/internal/logging"
	"github.com/systmms/keyvars/internal/metrics"
	"github.com/systmms/keyvars/internal/testutil"
)

type testEnv struct {
	cfg   *config.Config
	store *testutil.FakeStore
	logs  *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fake := testutil.NewFakeStore()
	logs := &bytes.Buffer{}
	return &testEnv{
		cfg: &config.Config{
			Path:      filepath.Join(t.TempDir(), "config.yaml"),
			Logger:    logging.NewWithWriter(logs, false, true),
			Metrics:   metrics.New(),
			LookupEnv: func(string) (string, bool) { return "", false },
			Backend:   &config.Backend{Name: "system", Store: fake, Enumerator: fake},
		},
		store: fake,
		logs:  logs,
	}
}

// run executes cmd with args and stdin, returning what it wrote to stdout
func run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), err
}
