// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru/infopage/internal/constants"
	"github.com/poruru/infopage/internal/meta"
)

// LookupFunc matches os.LookupEnv so tests can supply a fixed environment.
type LookupFunc func(key string) (string, bool)

// ValueOrDefault returns the value of key, or fallback when the variable is
// absent or empty. The value is returned as-is; no trimming or validation.
func ValueOrDefault(lookup LookupFunc, key, fallback string) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

// HostEnvKey constructs a host-level environment variable name
// by combining the env prefix with the given suffix.
// Example: HostEnvKey("LISTEN") returns "INFOPAGE_LISTEN" unless ENV_PREFIX is set.
func HostEnvKey(suffix string) string {
	prefix := strings.TrimSpace(os.Getenv(constants.EnvPrefixOverride))
	if prefix == "" {
		prefix = meta.EnvPrefix
	}
	return prefix + "_" + suffix
}

// GetHostEnv retrieves a host-level environment variable.
// Example: GetHostEnv("LISTEN") returns the value of INFOPAGE_LISTEN.
func GetHostEnv(suffix string) string {
	return os.Getenv(HostEnvKey(suffix))
}
