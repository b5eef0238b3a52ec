package store

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/99designs/keyring"

	"github.com/systmms/keyvars/internal/enumerate"
	"github.com/systmms/keyvars/internal/logging"
	"github.com/systmms/keyvars/internal/naming"
)

// itemSeparator joins namespace and name into one file keyring key. Neither
// grammar allows it.
const itemSeparator = "/"

// FileStore keeps secrets in an encrypted file keyring. Unlike the system
// keychain it can list its own keys, so it enumerates without scraping.
type FileStore struct {
	ring   keyring.Keyring
	logger *logging.Logger
}

// OpenFileStore opens (creating if needed) the file keyring in dir. prompt
// supplies the passphrase.
func OpenFileStore(dir string, prompt keyring.PromptFunc, logger *logging.Logger) (*FileStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:      ServiceName,
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          dir,
		FilePasswordFunc: prompt,
	})
	if err != nil {
		return nil, storeErr("open", ServiceName, dir, err)
	}
	return &FileStore{ring: ring, logger: logger}, nil
}

func itemKey(namespace, name string) string {
	return namespace + itemSeparator + name
}

// Set writes a secret to the file keyring
func (s *FileStore) Set(namespace, name, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:   itemKey(namespace, name),
		Data:  []byte(value),
		Label: name + " (" + namespace + ")",
	})
	if err != nil {
		return storeErr("set", namespace, name, err)
	}
	return nil
}

// Get reads a secret from the file keyring
func (s *FileStore) Get(namespace, name string) (string, bool, error) {
	item, err := s.ring.Get(itemKey(namespace, name))
	if err != nil {
		if isFileNotFound(err) {
			return "", false, nil
		}
		return "", false, storeErr("get", namespace, name, err)
	}
	return string(item.Data), true, nil
}

// Delete removes a secret from the file keyring
func (s *FileStore) Delete(namespace, name string) (bool, error) {
	if err := s.ring.Remove(itemKey(namespace, name)); err != nil {
		if isFileNotFound(err) {
			return false, nil
		}
		return false, storeErr("delete", namespace, name, err)
	}
	return true, nil
}

// Enumerate lists the keyring's own keys. Keys that do not split into a
// namespace and a name are skipped; a listing failure yields no entries.
func (s *FileStore) Enumerate(ctx context.Context) []naming.Entry {
	keys, err := s.ring.Keys()
	if err != nil {
		s.logger.Debug("File keyring listing failed: %v", err)
		return nil
	}

	entries := make([]naming.Entry, 0, len(keys))
	for _, k := range keys {
		ns, name, ok := strings.Cut(k, itemSeparator)
		if !ok || ns == "" || name == "" || strings.Contains(name, itemSeparator) {
			continue
		}
		entries = append(entries, naming.Entry{Namespace: ns, Key: name})
	}
	return entries
}

func isFileNotFound(err error) bool {
	return errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, fs.ErrNotExist)
}

var (
	_ Store                = (*FileStore)(nil)
	_ enumerate.Enumerator = (*FileStore)(nil)
)
