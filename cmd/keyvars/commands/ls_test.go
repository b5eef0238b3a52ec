package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kverrors "github.com/systmms/keyvars/internal/errors"
	"github.com/systmms/keyvars/internal/naming"
)

func seedLayers(env *testEnv) {
	env.store.
		Put("_", "EDITOR", "vim").
		Put("_", "X", "1").
		Put("app", "X", "2").
		Put("app", "ONLY", "o").
		Put("app::dev", "X", "3").
		Put("other", "Y", "y")
	env.store.Foreign = []naming.Entry{{Namespace: "Chrome Safe Storage", Key: "Chrome"}}
}

func TestLsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "all namespaces",
			args: nil,
			want: "_\n├── EDITOR\n└── X\n\napp\n├── ONLY\n└── X\n\napp::dev\n└── X\n\nother\n└── Y\n",
		},
		{
			name: "layered with shadowing",
			args: []string{"-s", "app", "-e", "dev"},
			want: "_\n├── EDITOR\n└── \x1b[9mX\x1b[0m\n\napp\n├── ONLY\n└── \x1b[9mX\x1b[0m\n\napp::dev\n└── X\n",
		},
		{
			name: "missing environment layer omitted",
			args: []string{"-s", "app", "-e", "prod"},
			want: "_\n├── EDITOR\n└── \x1b[9mX\x1b[0m\n\napp\n├── ONLY\n└── X\n",
		},
		{
			name: "unknown service keeps root",
			args: []string{"-s", "nothing"},
			want: "_\n├── EDITOR\n└── X\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			seedLayers(env)

			out, err := run(t, NewLsCommand(env.cfg), "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestLsCommand_Empty(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	out, err := run(t, NewLsCommand(env.cfg), "")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, env.logs.String(), "No variables stored")
}

func TestLsCommand_EnvWithoutService(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := run(t, NewLsCommand(env.cfg), "", "-e", "dev")

	var cfgErr kverrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLsCommand_NeverReadsValues(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	seedLayers(env)

	_, err := run(t, NewLsCommand(env.cfg), "", "-s", "app")
	require.NoError(t, err)
	assert.Empty(t, env.store.Gets)
}
