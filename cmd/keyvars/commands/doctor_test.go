package commands

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kverrors "github.com/systmms/keyvars/internal/errors"
)

func TestDoctorCommand(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	seedLayers(env)

	out, err := run(t, NewDoctorCommand(env.cfg), "")
	require.NoError(t, err)

	assert.Contains(t, out, "CHECK")
	assert.Contains(t, out, "defaults (")
	assert.Contains(t, out, "built in")
	assert.Contains(t, out, "reachable")
	assert.Contains(t, out, "6 in 4 namespaces")
	assert.Contains(t, out, "1 ignored")
	assert.NotContains(t, out, "vim", "doctor never prints values")
}

func TestDoctorCommand_StoreFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.GetErr = &kverrors.StoreError{Op: "get", Namespace: "_", Name: probeKey, Err: errors.New("dbus: no session bus")}

	out, err := run(t, NewDoctorCommand(env.cfg), "")

	var userErr kverrors.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "1 checks failed", userErr.Message)
	assert.Contains(t, out, statusFail)
	assert.Contains(t, out, "Secret Service")
}

func TestDoctorCommand_BadConfig(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.cfg.Path, []byte("backend: vault\n"), 0o600))

	_, err := run(t, NewDoctorCommand(env.cfg), "")
	var cfgErr kverrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}
