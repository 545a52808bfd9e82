// Where: internal/command/test_helpers_test.go
// What: Shared fakes and helpers for command tests.
package command

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/poruru/infopage/internal/config"
	"github.com/poruru/infopage/internal/usecase/gather"
)

func setWorkingDir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd %s: %v", prev, err)
		}
	})
}

// isolateEnv clears the process-level settings a developer shell might carry.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV_PREFIX", "INFOPAGE_CONFIG", "INFOPAGE_VARIANT", "INFOPAGE_LISTEN",
		"INFOPAGE_SECRET_BACKEND", "INFOPAGE_LOG_LEVEL", "INFOPAGE_LOG_FORMAT",
		"INFOPAGE_DOCKER_LOOKUP", "INFOPAGE_TEMPLATE", "INFOPAGE_METRICS_LISTEN",
		"INFOPAGE_PUBLIC_IP_URL", "INFOPAGE_PUBLIC_IP_TIMEOUT",
		"INFOPAGE_SECRET_CACHE_TTL", "INFOPAGE_SECRET_TIMEOUT", "CLI_CMD",
	} {
		t.Setenv(key, "")
	}
	setWorkingDir(t, t.TempDir())
}

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

type fakeHostInfo struct{}

func (fakeHostInfo) HostName() (string, error) { return "web-1", nil }

func (fakeHostInfo) LocalAddress(context.Context) (string, error) { return "10.0.0.4", nil }

type fakePublicIP struct{ value string }

func (f fakePublicIP) PublicAddress(context.Context) string { return f.value }

type fakeNamer struct{ closed *bool }

func (fakeNamer) ContainerName(context.Context, string) (string, error) { return "infopage-web-1", nil }

func (f fakeNamer) Close() error {
	*f.closed = true
	return nil
}

type fakeStore struct {
	value string
	cfg   *config.SecretsConfig
}

func (f fakeStore) GetSecret(context.Context, string, string) (string, error) { return f.value, nil }

type publicIPCall struct {
	url     string
	timeout time.Duration
}

func testDependencies(out, errOut io.Writer, env map[string]string) (Dependencies, *[]publicIPCall) {
	var calls []publicIPCall
	deps := Dependencies{
		Out:         out,
		ErrOut:      errOut,
		LookupEnv:   envMap(env),
		NewHostInfo: func() gather.HostInfo { return fakeHostInfo{} },
		NewPublicIP: func(url string, timeout time.Duration, _ func(error)) gather.PublicAddressFetcher {
			calls = append(calls, publicIPCall{url: url, timeout: timeout})
			return fakePublicIP{value: "203.0.113.5"}
		},
		NewSecretStore: func(_ context.Context, cfg config.SecretsConfig) (gather.SecretFetcher, error) {
			return fakeStore{value: "hunter2", cfg: &cfg}, nil
		},
	}
	return deps, &calls
}
