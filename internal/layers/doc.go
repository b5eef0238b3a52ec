// Package layers groups enumerated entries by namespace, resolves which
// namespaces take part in a request, and merges them in precedence order.
//
// Precedence is always root, then service, then service::environment. The
// same last-layer-wins rule drives both the flat merge used for injection
// and the annotated merge used for display.
package layers
