// Package testutil provides test doubles shared across keyvars packages:
// a scripted command runner for enumeration and an in-memory store.
package testutil
