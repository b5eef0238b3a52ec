package naming

import (
	"strings"

	kverrors "github.com/systmms/keyvars/internal/errors"
)

// BuildNamespace returns the canonical namespace for an optional service and
// environment. Empty strings mean "not given".
func BuildNamespace(service, env string) (string, error) {
	if service == "" {
		if env != "" {
			return "", kverrors.ConfigError{
				Field:      "environment",
				Value:      env,
				Message:    "environment requires service",
				Suggestion: "Pass --service together with --env",
			}
		}
		return Root, nil
	}

	if err := ValidateService(service); err != nil {
		return "", err
	}
	if env == "" {
		return service, nil
	}

	if service == Root {
		return "", kverrors.ConfigError{
			Field:      "environment",
			Value:      env,
			Message:    "the root namespace cannot carry an environment",
			Suggestion: "Use a named service with --env",
		}
	}
	if err := ValidateEnvironment(env); err != nil {
		return "", err
	}
	return service + Separator + env, nil
}

// ParseNamespace splits a namespace into service and environment. Only an
// exact two-part split with both parts non-empty is decomposed; anything
// else, including a namespace with more than one separator, comes back whole
// as the service with no environment.
func ParseNamespace(ns string) (service, env string) {
	parts := strings.Split(ns, Separator)
	if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
		return parts[0], parts[1]
	}
	return ns, ""
}
