package layers

import (
	"sort"

	"github.com/systmms/keyvars/internal/naming"
)

// Groups maps each namespace to its sorted keys.
type Groups struct {
	order []string
	keys  map[string][]string
}

// GroupByNamespace groups entries by namespace. Duplicate (namespace, key)
// pairs collapse into one key.
func GroupByNamespace(entries []naming.Entry) *Groups {
	g := &Groups{keys: make(map[string][]string)}
	seen := make(map[naming.Entry]struct{}, len(entries))

	for _, e := range entries {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}

		if _, ok := g.keys[e.Namespace]; !ok {
			g.order = append(g.order, e.Namespace)
		}
		g.keys[e.Namespace] = append(g.keys[e.Namespace], e.Key)
	}

	for _, keys := range g.keys {
		sort.Strings(keys)
	}
	return g
}

// SortedNamespaces returns namespaces with the root first and the rest ascending.
func (g *Groups) SortedNamespaces() []string {
	return SortNamespaces(g.order)
}

// Keys returns the sorted keys of ns and whether ns has any entries.
func (g *Groups) Keys(ns string) ([]string, bool) {
	keys, ok := g.keys[ns]
	return keys, ok
}

// Len returns the number of namespaces.
func (g *Groups) Len() int {
	return len(g.order)
}

// SortNamespaces returns a sorted copy of namespaces: the root sentinel
// first, everything else in ascending order.
func SortNamespaces(namespaces []string) []string {
	out := make([]string, len(namespaces))
	copy(out, namespaces)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i] == naming.Root || out[j] == naming.Root {
			return out[i] == naming.Root && out[j] != naming.Root
		}
		return out[i] < out[j]
	})
	return out
}

// ResolveLayers returns the namespaces taking part in a request, lowest
// precedence first. The root is always present.
func ResolveLayers(service, env string) ([]string, error) {
	if service == "" || service == naming.Root {
		// BuildNamespace rejects an environment here.
		if _, err := naming.BuildNamespace(service, env); err != nil {
			return nil, err
		}
		return []string{naming.Root}, nil
	}

	layers := []string{naming.Root}

	serviceNS, err := naming.BuildNamespace(service, "")
	if err != nil {
		return nil, err
	}
	layers = append(layers, serviceNS)

	if env != "" {
		envNS, err := naming.BuildNamespace(service, env)
		if err != nil {
			return nil, err
		}
		layers = append(layers, envNS)
	}
	return layers, nil
}
