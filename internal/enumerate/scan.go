package enumerate

import (
	"bufio"
	"strings"

	"github.com/systmms/keyvars/internal/naming"
)

// Parser turns raw listing output into entries.
type Parser interface {
	Parse(raw string) []naming.Entry
}

// record accumulates the candidate fields of one listing record.
type record struct {
	eligible     bool
	namespace    string
	key          string
	hasNamespace bool
	hasKey       bool
}

func (r *record) setNamespace(v string) {
	r.namespace = v
	r.hasNamespace = true
}

func (r *record) setKey(v string) {
	r.key = v
	r.hasKey = true
}

// complete reports whether both fields were observed in an eligible record.
func (r record) complete() bool {
	return r.eligible && r.hasNamespace && r.hasKey
}

// lineFormat describes one platform's record stream.
type lineFormat interface {
	// begin reports whether line opens a new record and returns its initial state.
	begin(line string) (record, bool)
	// field folds a line inside the current record into r.
	field(line string, r *record)
	// finish turns a closed record into an entry.
	finish(r record) (naming.Entry, bool)
}

// scan walks raw line by line, emitting the pending record whenever a new
// one begins and once more at end of input. Lines before the first record
// boundary are ignored.
func scan(raw string, f lineFormat) []naming.Entry {
	var (
		entries []naming.Entry
		cur     record
		open    bool
	)

	flush := func() {
		if open {
			if e, ok := f.finish(cur); ok {
				entries = append(entries, e)
			}
		}
		cur = record{}
	}

	sc := bufio.NewScanner(strings.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if next, ok := f.begin(line); ok {
			flush()
			cur = next
			open = true
			continue
		}
		if open {
			f.field(line, &cur)
		}
	}
	// A scanner error (an oversized line) ends the scan; keep what was read.
	flush()

	return entries
}
