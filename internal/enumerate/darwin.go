package enumerate

import (
	"regexp"
	"strings"

	"github.com/systmms/keyvars/internal/naming"
)

var (
	darwinClass = regexp.MustCompile(`^class:\s*(.*)$`)
	darwinAttr  = regexp.MustCompile(`^\s*"(svce|acct)"<blob>="(.*)"\s*$`)
)

// DarwinParser reads `security dump-keychain` output. Only generic password
// records (class "genp") are emitted; svce is the namespace, acct the key.
type DarwinParser struct{}

func (p DarwinParser) Parse(raw string) []naming.Entry {
	return scan(raw, p)
}

func (DarwinParser) begin(line string) (record, bool) {
	m := darwinClass.FindStringSubmatch(line)
	if m == nil {
		return record{}, false
	}
	return record{eligible: strings.TrimSpace(m[1]) == `"genp"`}, true
}

func (DarwinParser) field(line string, r *record) {
	m := darwinAttr.FindStringSubmatch(line)
	if m == nil {
		return
	}
	switch m[1] {
	case "svce":
		r.setNamespace(m[2])
	case "acct":
		r.setKey(m[2])
	}
}

func (DarwinParser) finish(r record) (naming.Entry, bool) {
	if !r.complete() {
		return naming.Entry{}, false
	}
	return naming.Entry{Namespace: r.namespace, Key: r.key}, true
}
