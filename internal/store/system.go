package store

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// SystemStore keeps secrets in the platform keychain through go-keyring.
// The namespace is the keyring service and the name is the account.
type SystemStore struct{}

// NewSystemStore creates a store backed by the OS keychain
func NewSystemStore() *SystemStore {
	return &SystemStore{}
}

// Set writes a secret to the keychain
func (s *SystemStore) Set(namespace, name, value string) error {
	if err := keyring.Set(namespace, name, value); err != nil {
		return storeErr("set", namespace, name, err)
	}
	return nil
}

// Get reads a secret from the keychain
func (s *SystemStore) Get(namespace, name string) (string, bool, error) {
	value, err := keyring.Get(namespace, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		return "", false, storeErr("get", namespace, name, err)
	}
	return value, true, nil
}

// Delete removes a secret from the keychain
func (s *SystemStore) Delete(namespace, name string) (bool, error) {
	if err := keyring.Delete(namespace, name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return false, nil
		}
		return false, storeErr("delete", namespace, name, err)
	}
	return true, nil
}

var _ Store = (*SystemStore)(nil)
