// Package store addresses the OS credential store by (namespace, name).
//
// Two backends exist: the system keychain (macOS Keychain, Secret Service,
// Windows Credential Manager) and an encrypted file keyring for hosts
// without one. Not-found is reported through the found/existed results and
// is never an error; every other failure is a *errors.StoreError.
package store

import (
	kverrors "github.com/systmms/keyvars/internal/errors"
)

// Backend names accepted in configuration
const (
	BackendSystem = "system"
	BackendFile   = "file"
)

// ServiceName identifies keyvars items in keyrings that need one
const ServiceName = "keyvars"

// Store is a key/value credential store addressed by (namespace, name)
type Store interface {
	// Set writes value, replacing any existing one.
	Set(namespace, name, value string) error

	// Get returns the value and whether it exists.
	Get(namespace, name string) (value string, found bool, err error)

	// Delete removes the item and reports whether it existed.
	Delete(namespace, name string) (existed bool, err error)
}

func storeErr(op, namespace, name string, err error) error {
	return &kverrors.StoreError{Op: op, Namespace: namespace, Name: name, Err: err}
}
