package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kverrors "github.com/systmms/keyvars/internal/errors"
	"github.com/systmms/keyvars/internal/naming"
)

func TestRmCommand(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.Put("app::dev", "API_KEY", "k2").Put("app", "API_KEY", "k1")

	_, err := run(t, NewRmCommand(env.cfg), "", "-s", "app", "-e", "dev", "API_KEY")
	require.NoError(t, err)

	assert.NotContains(t, env.store.Items, naming.Entry{Namespace: "app::dev", Key: "API_KEY"})
	assert.Contains(t, env.store.Items, naming.Entry{Namespace: "app", Key: "API_KEY"})
	assert.Contains(t, env.logs.String(), "Removed API_KEY from app::dev")
}

func TestRmCommand_Absent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := run(t, NewRmCommand(env.cfg), "", "MISSING")
	require.NoError(t, err)
	assert.Contains(t, env.logs.String(), "⚠ MISSING was not set in _")
}

func TestRmCommand_StoreFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.DeleteErr = &kverrors.StoreError{Op: "delete", Namespace: "_", Name: "K", Err: errors.New("boom")}

	_, err := run(t, NewRmCommand(env.cfg), "", "K")
	var userErr kverrors.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "Failed to remove K", userErr.Message)
}
