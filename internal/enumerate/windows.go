package enumerate

import (
	"regexp"
	"strings"

	"github.com/systmms/keyvars/internal/naming"
)

var (
	windowsTarget = regexp.MustCompile(`^\s*Target:\s*(.+?)\s*$`)
	windowsUser   = regexp.MustCompile(`^\s*User:\s*(.+?)\s*$`)
)

// WindowsParser reads `cmdkey /list` output. Credentials are stored with a
// "<namespace>:<key>" target and the key as user name, so the namespace is
// the target minus its ":<user>" suffix.
type WindowsParser struct{}

func (p WindowsParser) Parse(raw string) []naming.Entry {
	return scan(raw, p)
}

func (WindowsParser) begin(line string) (record, bool) {
	m := windowsTarget.FindStringSubmatch(line)
	if m == nil {
		return record{}, false
	}
	target := m[1]
	// "LegacyGeneric:target=app:KEY" -> "app:KEY"
	if i := strings.Index(target, "target="); i >= 0 {
		target = target[i+len("target="):]
	}
	r := record{eligible: true}
	r.setNamespace(target)
	return r, true
}

func (WindowsParser) field(line string, r *record) {
	if m := windowsUser.FindStringSubmatch(line); m != nil {
		r.setKey(m[1])
	}
}

func (WindowsParser) finish(r record) (naming.Entry, bool) {
	if !r.complete() {
		return naming.Entry{}, false
	}
	ns, ok := strings.CutSuffix(r.namespace, ":"+r.key)
	if !ok || ns == "" {
		return naming.Entry{}, false
	}
	return naming.Entry{Namespace: ns, Key: r.key}, true
}
