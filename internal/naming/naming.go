// Package naming defines the identifier grammar for services, environments
// and keys, and the canonical namespace strings built from them.
package naming

import (
	"regexp"

	kverrors "github.com/systmms/keyvars/internal/errors"
)

const (
	// Root is the always-present default namespace. It never carries an environment.
	Root = "_"

	// Separator joins a service and an environment into one namespace.
	Separator = "::"
)

// Descriptions of each grammar, reported in ValidationError.Allowed
const (
	ServiceChars     = "letters, digits, '.', '_' and '-' (or the root namespace '_')"
	EnvironmentChars = "letters, digits, '_' and '-'"
	KeyChars         = "an uppercase letter followed by uppercase letters, digits and underscores"
)

var (
	servicePattern     = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	environmentPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	keyPattern         = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
	namespacePattern   = regexp.MustCompile(`^[A-Za-z0-9._-]+(::[A-Za-z0-9_-]+)?$`)
)

// Entry is one (namespace, key) item enumerated from the store.
type Entry struct {
	Namespace string
	Key       string
}

// ValidateService checks a service identifier. The root sentinel is always valid.
func ValidateService(service string) error {
	if service == Root || servicePattern.MatchString(service) {
		return nil
	}
	return kverrors.ValidationError{Kind: "service", Value: service, Allowed: ServiceChars}
}

// ValidateEnvironment checks an environment identifier.
func ValidateEnvironment(env string) error {
	if environmentPattern.MatchString(env) {
		return nil
	}
	return kverrors.ValidationError{Kind: "environment", Value: env, Allowed: EnvironmentChars}
}

// ValidateKey checks a key identifier.
func ValidateKey(key string) error {
	if keyPattern.MatchString(key) {
		return nil
	}
	return kverrors.ValidationError{Kind: "key", Value: key, Allowed: KeyChars}
}

// IsNamespace reports whether ns is a well-formed namespace: the root
// sentinel, a service, or service::environment. The root never takes an
// environment.
func IsNamespace(ns string) bool {
	if ns == Root {
		return true
	}
	if !namespacePattern.MatchString(ns) {
		return false
	}
	service, _ := ParseNamespace(ns)
	return service != Root
}

// IsKey reports whether key matches the key grammar.
func IsKey(key string) bool {
	return keyPattern.MatchString(key)
}
