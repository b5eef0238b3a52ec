package resolve_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kverrors "github.com/systmms/keyvars/internal/errors"
	"github.com/systmms/keyvars/internal/layers"
	"github.com/systmms/keyvars/internal/logging"
	"github.com/systmms/keyvars/internal/metrics"
	"github.com/systmms/keyvars/internal/naming"
	"github.com/systmms/keyvars/internal/resolve"
	"github.com/systmms/keyvars/internal/testutil"
)

func newResolver(fake *testutil.FakeStore) (*resolve.Resolver, *metrics.Metrics) {
	m := metrics.New()
	logger := logging.NewWithWriter(io.Discard, true, true)
	return resolve.New(fake, fake, logger, m), m
}

func seeded() *testutil.FakeStore {
	fake := testutil.NewFakeStore().
		Put("_", "EDITOR", "vim").
		Put("app", "API_KEY", "k1").
		Put("app::dev", "API_KEY", "k2").
		Put("other", "API_KEY", "nope")
	fake.Foreign = []naming.Entry{
		{Namespace: "Chrome Safe Storage", Key: "Chrome"},
		{Namespace: "com.apple.assistant", Key: "1A2B-uuid"},
	}
	return fake
}

func TestResolver_Entries(t *testing.T) {
	t.Parallel()

	r, m := newResolver(seeded())
	entries := r.Entries(context.Background())
	assert.Len(t, entries, 4)

	expected := `
# HELP keyvars_enumerated_entries_total Entries read from the credential store listing
# TYPE keyvars_enumerated_entries_total counter
keyvars_enumerated_entries_total 6
# HELP keyvars_foreign_entries_total Listed entries discarded because they do not belong to keyvars
# TYPE keyvars_foreign_entries_total counter
keyvars_foreign_entries_total 2
`
	err := promtest.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"keyvars_enumerated_entries_total", "keyvars_foreign_entries_total")
	assert.NoError(t, err)
}

func TestResolver_Environment(t *testing.T) {
	t.Parallel()

	fake := seeded()
	r, _ := newResolver(fake)

	vars, err := r.Environment(context.Background(), "app", "dev")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"EDITOR": "vim", "API_KEY": "k2"}, vars)
	assert.Equal(t, []naming.Entry{
		{Namespace: "_", Key: "EDITOR"},
		{Namespace: "app", Key: "API_KEY"},
		{Namespace: "app::dev", Key: "API_KEY"},
	}, fake.Gets, "layers are fetched in order and unrelated namespaces are never read")
}

func TestResolver_EnvironmentScopes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		service string
		env     string
		want    map[string]string
	}{
		{"root", "", "", map[string]string{"EDITOR": "vim"}},
		{"service", "app", "", map[string]string{"EDITOR": "vim", "API_KEY": "k1"}},
		{"unknown environment", "app", "prod", map[string]string{"EDITOR": "vim", "API_KEY": "k1"}},
		{"unknown service", "nothing", "", map[string]string{"EDITOR": "vim"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, _ := newResolver(seeded())
			got, err := r.Environment(context.Background(), tt.service, tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_EnvironmentSkipsVanishedKeys(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeStore().Put("_", "A", "1")
	fake.Foreign = []naming.Entry{{Namespace: "_", Key: "GONE"}}
	r, _ := newResolver(fake)

	got, err := r.Environment(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1"}, got)
}

func TestResolver_EnvironmentStoreFailure(t *testing.T) {
	t.Parallel()

	fake := seeded()
	fake.GetErr = &kverrors.StoreError{Op: "get", Namespace: "_", Name: "EDITOR", Err: errors.New("keychain locked")}
	r, _ := newResolver(fake)

	got, err := r.Environment(context.Background(), "app", "dev")
	assert.Nil(t, got)
	var storeErr *kverrors.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Len(t, fake.Gets, 1)
}

func TestResolver_InvalidScope(t *testing.T) {
	t.Parallel()

	r, _ := newResolver(seeded())

	_, err := r.Environment(context.Background(), "", "dev")
	var cfgErr kverrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = r.Layered(context.Background(), "bad svc", "")
	var vErr kverrors.ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = r.Sources(context.Background(), "app", "d.e")
	assert.ErrorAs(t, err, &vErr)
}

func TestResolver_Layered(t *testing.T) {
	t.Parallel()

	r, _ := newResolver(seeded())

	views, err := r.Layered(context.Background(), "app", "dev")
	require.NoError(t, err)
	assert.Equal(t, []layers.View{
		{Namespace: "_", Present: true, Keys: []layers.Key{{Name: "EDITOR"}}},
		{Namespace: "app", Present: true, Keys: []layers.Key{{Name: "API_KEY", Shadowed: true}}},
		{Namespace: "app::dev", Present: true, Keys: []layers.Key{{Name: "API_KEY"}}},
	}, views)
}

func TestResolver_Sources(t *testing.T) {
	t.Parallel()

	r, _ := newResolver(seeded())

	got, err := r.Sources(context.Background(), "app", "dev")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"EDITOR": "_", "API_KEY": "app::dev"}, got)
}

func TestResolver_All(t *testing.T) {
	t.Parallel()

	r, _ := newResolver(seeded())

	views := r.All(context.Background())
	require.Len(t, views, 4)
	names := make([]string, 0, len(views))
	for _, v := range views {
		names = append(names, v.Namespace)
		for _, k := range v.Keys {
			assert.False(t, k.Shadowed)
		}
	}
	assert.Equal(t, []string{"_", "app", "app::dev", "other"}, names)
}

func TestResolver_EmptyStore(t *testing.T) {
	t.Parallel()

	r, _ := newResolver(testutil.NewFakeStore())

	vars, err := r.Environment(context.Background(), "app", "dev")
	require.NoError(t, err)
	assert.Empty(t, vars)
	assert.Empty(t, r.All(context.Background()))
}

func TestResolver_ResolveListsOnce(t *testing.T) {
	t.Parallel()

	r, m := newResolver(seeded())

	res, err := r.Resolve(context.Background(), "app", "dev")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"EDITOR": "vim", "API_KEY": "k2"}, res.Vars)
	assert.Equal(t, map[string]string{"EDITOR": "_", "API_KEY": "app::dev"}, res.Sources)

	expected := `
# HELP keyvars_enumerated_entries_total Entries read from the credential store listing
# TYPE keyvars_enumerated_entries_total counter
keyvars_enumerated_entries_total 6
`
	err = promtest.GatherAndCompare(m.Registry(), strings.NewReader(expected), "keyvars_enumerated_entries_total")
	assert.NoError(t, err)
}

func TestResolver_ResolveSourcesFollowValues(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeStore().
		Put("_", "EDITOR", "vim").
		Put("app", "API_KEY", "k1")
	fake.Foreign = []naming.Entry{{Namespace: "app::dev", Key: "API_KEY"}}
	r, _ := newResolver(fake)

	res, err := r.Resolve(context.Background(), "app", "dev")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"EDITOR": "vim", "API_KEY": "k1"}, res.Vars)
	assert.Equal(t, map[string]string{"EDITOR": "_", "API_KEY": "app"}, res.Sources,
		"a key listed in app::dev but gone at fetch time is sourced from app")
}
