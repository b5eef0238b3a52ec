package metrics

import (
	"os"
	"path/filepath"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCall(t *testing.T) {
	t.Parallel()

	m := New()
	m.StoreCall("get", ResultOK)
	m.StoreCall("get", ResultOK)
	m.StoreCall("delete", ResultNotFound)

	assert.Equal(t, 2.0, promtest.ToFloat64(m.storeCalls.WithLabelValues("get", ResultOK)))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.storeCalls.WithLabelValues("delete", ResultNotFound)))
	assert.Equal(t, 0.0, promtest.ToFloat64(m.storeCalls.WithLabelValues("set", ResultError)))
}

func TestEnumerated(t *testing.T) {
	t.Parallel()

	m := New()
	m.Enumerated(10, 4)
	m.Enumerated(3, 3)

	assert.Equal(t, 13.0, promtest.ToFloat64(m.enumerated))
	assert.Equal(t, 6.0, promtest.ToFloat64(m.discarded))
}

func TestInjected(t *testing.T) {
	t.Parallel()

	m := New()
	m.Injected(5)
	m.Injected(2)

	assert.Equal(t, 2.0, promtest.ToFloat64(m.injected))
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	m := New()
	m.StoreCall("set", ResultOK)
	m.Enumerated(2, 1)

	path := filepath.Join(t.TempDir(), "keyvars.prom")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `keyvars_store_calls_total{op="set",result="ok"} 1`)
	assert.Contains(t, out, "keyvars_enumerated_entries_total 2")
	assert.Contains(t, out, "keyvars_foreign_entries_total 1")
	assert.Contains(t, out, "# HELP keyvars_injected_variables")
}
