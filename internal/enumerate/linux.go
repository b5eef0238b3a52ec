package enumerate

import (
	"regexp"
	"strings"

	"github.com/systmms/keyvars/internal/naming"
)

var (
	linuxHeader = regexp.MustCompile(`^\[(.+)\]\s*$`)
	linuxAttr   = regexp.MustCompile(`^attribute\.(service|username)\s*=\s*(.*)$`)
)

// LinuxParser reads `secret-tool search --all` output. Each record opens
// with a bracketed object path; attribute.service is the namespace and
// attribute.username the key.
type LinuxParser struct{}

func (p LinuxParser) Parse(raw string) []naming.Entry {
	return scan(raw, p)
}

func (LinuxParser) begin(line string) (record, bool) {
	if !linuxHeader.MatchString(line) {
		return record{}, false
	}
	return record{eligible: true}, true
}

func (LinuxParser) field(line string, r *record) {
	m := linuxAttr.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return
	}
	value := strings.TrimSpace(m[2])
	switch m[1] {
	case "service":
		r.setNamespace(value)
	case "username":
		r.setKey(value)
	}
}

func (LinuxParser) finish(r record) (naming.Entry, bool) {
	if !r.complete() {
		return naming.Entry{}, false
	}
	return naming.Entry{Namespace: r.namespace, Key: r.key}, true
}
