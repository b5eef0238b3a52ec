package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/systmms/keyvars/internal/enumerate"
	"github.com/systmms/keyvars/internal/naming"
	"github.com/systmms/keyvars/internal/store"
)

// FakeStore is an in-memory store.Store that can also enumerate itself.
type FakeStore struct {
	mu sync.Mutex

	// Items maps each entry to its value
	Items map[naming.Entry]string

	// Foreign entries are listed by Enumerate but have no value, like
	// unrelated credentials sharing the OS store.
	Foreign []naming.Entry

	// SetErr, GetErr and DeleteErr are returned by the matching call when set
	SetErr    error
	GetErr    error
	DeleteErr error

	// Gets records every Get call in order
	Gets []naming.Entry
}

// NewFakeStore creates an empty fake store
func NewFakeStore() *FakeStore {
	return &FakeStore{Items: make(map[naming.Entry]string)}
}

// Put adds an item without going through Set
func (f *FakeStore) Put(namespace, name, value string) *FakeStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Items[naming.Entry{Namespace: namespace, Key: name}] = value
	return f
}

func (f *FakeStore) Set(namespace, name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetErr != nil {
		return f.SetErr
	}
	f.Items[naming.Entry{Namespace: namespace, Key: name}] = value
	return nil
}

func (f *FakeStore) Get(namespace, name string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := naming.Entry{Namespace: namespace, Key: name}
	f.Gets = append(f.Gets, e)
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	v, ok := f.Items[e]
	return v, ok, nil
}

func (f *FakeStore) Delete(namespace, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return false, f.DeleteErr
	}
	e := naming.Entry{Namespace: namespace, Key: name}
	_, ok := f.Items[e]
	delete(f.Items, e)
	return ok, nil
}

// Enumerate lists stored items in a stable order, followed by Foreign.
func (f *FakeStore) Enumerate(context.Context) []naming.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]naming.Entry, 0, len(f.Items)+len(f.Foreign))
	for e := range f.Items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].Key < out[j].Key
	})
	return append(out, f.Foreign...)
}

var (
	_ store.Store          = (*FakeStore)(nil)
	_ enumerate.Enumerator = (*FakeStore)(nil)
)
