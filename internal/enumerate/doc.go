// Package enumerate lists the (namespace, key) items held in the OS
// credential store by scraping the platform's native listing command.
//
// The listing formats are undocumented and change between OS releases, so
// enumeration is best-effort: a missing or failing command, or output that
// cannot be parsed, produces fewer entries and never an error. Each platform
// parser sits behind the same Parser interface so a structured listing can
// replace the text scraping without touching callers.
package enumerate
