package store

import (
	"github.com/systmms/keyvars/internal/metrics"
)

// Instrumented counts every call to the wrapped store by operation and result
type Instrumented struct {
	next    Store
	metrics *metrics.Metrics
}

// NewInstrumented wraps next
func NewInstrumented(next Store, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

func (s *Instrumented) Set(namespace, name, value string) error {
	err := s.next.Set(namespace, name, value)
	s.metrics.StoreCall("set", result(true, err))
	return err
}

func (s *Instrumented) Get(namespace, name string) (string, bool, error) {
	value, found, err := s.next.Get(namespace, name)
	s.metrics.StoreCall("get", result(found, err))
	return value, found, err
}

func (s *Instrumented) Delete(namespace, name string) (bool, error) {
	existed, err := s.next.Delete(namespace, name)
	s.metrics.StoreCall("delete", result(existed, err))
	return existed, err
}

func result(found bool, err error) string {
	switch {
	case err != nil:
		return metrics.ResultError
	case !found:
		return metrics.ResultNotFound
	default:
		return metrics.ResultOK
	}
}

var _ Store = (*Instrumented)(nil)
