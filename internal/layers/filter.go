package layers

import "github.com/systmms/keyvars/internal/naming"

// FilterValid keeps the entries whose namespace and key follow the keyvars
// grammar, dropping unrelated credentials that share the OS store. Order is
// preserved.
func FilterValid(entries []naming.Entry) []naming.Entry {
	kept := make([]naming.Entry, 0, len(entries))
	for _, e := range entries {
		if naming.IsNamespace(e.Namespace) && naming.IsKey(e.Key) {
			kept = append(kept, e)
		}
	}
	return kept
}
