package store_test

import (
	"errors"
	"strings"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/keyvars/internal/metrics"
	"github.com/systmms/keyvars/internal/store"
	"github.com/systmms/keyvars/internal/testutil"
)

func TestInstrumented_CountsCalls(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeStore()
	m := metrics.New()
	s := store.NewInstrumented(fake, m)

	require.NoError(t, s.Set("app", "K", "v"))
	_, found, err := s.Get("app", "K")
	require.NoError(t, err)
	assert.True(t, found)
	_, found, err = s.Get("app", "MISSING")
	require.NoError(t, err)
	assert.False(t, found)

	fake.GetErr = errors.New("locked")
	_, _, err = s.Get("app", "K")
	assert.Error(t, err)

	existed, err := s.Delete("app", "K")
	require.NoError(t, err)
	assert.True(t, existed)

	expected := `
# HELP keyvars_store_calls_total Credential store calls by operation and result
# TYPE keyvars_store_calls_total counter
keyvars_store_calls_total{op="delete",result="ok"} 1
keyvars_store_calls_total{op="get",result="error"} 1
keyvars_store_calls_total{op="get",result="not_found"} 1
keyvars_store_calls_total{op="get",result="ok"} 1
keyvars_store_calls_total{op="set",result="ok"} 1
`
	require.NoError(t, promtest.GatherAndCompare(m.Registry(), strings.NewReader(expected), "keyvars_store_calls_total"))
}

