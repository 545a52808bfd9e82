// Where: internal/infra/secrets/env.go
// What: Environment variable backend.
// Why: Orchestrators often inject secrets as env vars already.
package secrets

import (
	"context"
	"os"
	"strings"
)

// Env reads <prefix><NAME>, where NAME is the secret name upper-cased with
// every non-alphanumeric rune replaced by '_'. The vault argument is ignored.
type Env struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnv returns an Env backend. A nil lookup means os.LookupEnv.
func NewEnv(prefix string, lookup func(string) (string, bool)) *Env {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Env{prefix: prefix, lookup: lookup}
}

// GetSecret returns the variable's value; unset means not found, empty is a value.
func (e *Env) GetSecret(_ context.Context, _ string, name string) (string, error) {
	if err := requireName(name); err != nil {
		return "", err
	}
	key := e.Key(name)
	value, ok := e.lookup(key)
	if !ok {
		return "", notFound("", key)
	}
	return value, nil
}

// Key returns the environment variable consulted for name.
func (e *Env) Key(name string) string {
	normalized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(name))
	return e.prefix + normalized
}
