package layers

// Getter fetches one value from the store.
type Getter interface {
	Get(namespace, name string) (value string, found bool, err error)
}

// Flatten merges the layers in order, later layers overwriting earlier ones,
// fetching each value from get one key at a time. Layers with no entries
// contribute nothing. A key that lists but is no longer stored is skipped;
// any other store failure aborts the merge.
func Flatten(g *Groups, layers []string, get Getter) (map[string]string, error) {
	result := make(map[string]string)

	for _, ns := range layers {
		keys, ok := g.Keys(ns)
		if !ok {
			continue
		}
		for _, key := range keys {
			value, found, err := get.Get(ns, key)
			if err != nil {
				return nil, err
			}
			if !found {
				continue
			}
			result[key] = value
		}
	}
	return result, nil
}

// Key is one key of a namespace as displayed in a layered view.
type Key struct {
	Name     string
	Shadowed bool
}

// View is one namespace prepared for display. Present is false for a layer
// with no entries in the store.
type View struct {
	Namespace string
	Present   bool
	Keys      []Key
}

// Annotate marks, within the given layers only, every occurrence of a key
// except the one in the last layer defining it as shadowed.
func Annotate(g *Groups, layers []string) []View {
	owner := make(map[string]int)
	for i, ns := range layers {
		keys, _ := g.Keys(ns)
		for _, key := range keys {
			owner[key] = i
		}
	}

	views := make([]View, 0, len(layers))
	for i, ns := range layers {
		keys, ok := g.Keys(ns)
		view := View{Namespace: ns, Present: ok, Keys: make([]Key, 0, len(keys))}
		for _, key := range keys {
			view.Keys = append(view.Keys, Key{Name: key, Shadowed: owner[key] > i})
		}
		views = append(views, view)
	}
	return views
}

// All returns every namespace in display order with nothing shadowed.
func All(g *Groups) []View {
	namespaces := g.SortedNamespaces()
	views := make([]View, 0, len(namespaces))
	for _, ns := range namespaces {
		keys, _ := g.Keys(ns)
		view := View{Namespace: ns, Present: true, Keys: make([]Key, 0, len(keys))}
		for _, key := range keys {
			view.Keys = append(view.Keys, Key{Name: key})
		}
		views = append(views, view)
	}
	return views
}
