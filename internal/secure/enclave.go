package secure

import (
	"sort"
	"sync"

	"github.com/awnumar/memguard"
)

// SecureBuffer holds one secret encrypted at rest in memory.
//
// memguard refuses to seal zero-length data, so an empty value is tracked
// with a flag and opens to an empty buffer.
type SecureBuffer struct {
	enclave   *memguard.Enclave
	empty     bool
	mu        sync.RWMutex
	destroyed bool
}

// NewSecureBuffer seals data. memguard wipes the source slice.
func NewSecureBuffer(data []byte) (*SecureBuffer, error) {
	if len(data) == 0 {
		return &SecureBuffer{empty: true}, nil
	}
	return &SecureBuffer{enclave: memguard.NewEnclave(data)}, nil
}

// NewSecureBufferFromString seals a copy of s
func NewSecureBufferFromString(s string) (*SecureBuffer, error) {
	return NewSecureBuffer([]byte(s))
}

// Open decrypts the value into a locked buffer. The caller must Destroy the
// returned buffer. A destroyed or empty SecureBuffer opens to an empty one.
func (s *SecureBuffer) Open() (*memguard.LockedBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed || s.empty {
		return memguard.NewBuffer(0), nil
	}
	return s.enclave.Open()
}

// Destroy drops the enclave and makes Open return empty buffers.
// It is idempotent.
func (s *SecureBuffer) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return
	}
	s.enclave = nil
	s.destroyed = true
}

// Vars is a set of sealed variables keyed by name
type Vars map[string]*SecureBuffer

// SealAll seals every value of values. On failure already sealed values
// are destroyed.
func SealAll(values map[string]string) (Vars, error) {
	vars := make(Vars, len(values))
	for name, value := range values {
		buf, err := NewSecureBufferFromString(value)
		if err != nil {
			vars.Destroy()
			return nil, err
		}
		vars[name] = buf
	}
	return vars, nil
}

// Names returns the variable names in sorted order
func (v Vars) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Destroy destroys every buffer in the set
func (v Vars) Destroy() {
	for _, buf := range v {
		buf.Destroy()
	}
}
