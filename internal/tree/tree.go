// Package tree renders namespaces and their keys as box-drawing trees.
package tree

import (
	"bufio"
	"io"

	"github.com/systmms/keyvars/internal/layers"
	"github.com/systmms/keyvars/internal/naming"
)

// Branch glyphs and the strikethrough wrapper used for shadowed keys.
const (
	Branch     = "├── "
	LastBranch = "└── "
	StrikeOn   = "\x1b[9m"
	StrikeOff  = "\x1b[0m"
)

// Render writes each view as a header line followed by one branch per key,
// with a blank line between namespaces. A non-root view that is not present
// in the store is omitted; the root always prints its header.
func Render(w io.Writer, views []layers.View) error {
	bw := bufio.NewWriter(w)
	printed := 0

	for _, v := range views {
		if !v.Present && v.Namespace != naming.Root {
			continue
		}
		if printed > 0 {
			bw.WriteString("\n")
		}
		printed++

		bw.WriteString(v.Namespace)
		bw.WriteString("\n")
		for i, key := range v.Keys {
			if i == len(v.Keys)-1 {
				bw.WriteString(LastBranch)
			} else {
				bw.WriteString(Branch)
			}
			bw.WriteString(Label(key))
			bw.WriteString("\n")
		}
	}

	return bw.Flush()
}

// Label returns the display text of a key.
func Label(key layers.Key) string {
	if key.Shadowed {
		return StrikeOn + key.Name + StrikeOff
	}
	return key.Name
}
