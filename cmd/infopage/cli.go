// Where: cmd/infopage/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/poruru/infopage/internal/command"
	"github.com/poruru/infopage/internal/config"
	"github.com/poruru/infopage/internal/infra/docker"
	"github.com/poruru/infopage/internal/infra/hostinfo"
	"github.com/poruru/infopage/internal/infra/ipecho"
	"github.com/poruru/infopage/internal/infra/secrets"
	"github.com/poruru/infopage/internal/usecase/gather"
)

var (
	lookupEnv       = os.LookupEnv
	newDockerClient = docker.NewClient
	newSecretStore  = secrets.New
)

// buildDependencies constructs the runtime collaborators for the CLI.
// Clients are created lazily by the factories so `version` and `settings`
// never touch Docker or a cloud SDK.
func buildDependencies() command.Dependencies {
	return command.Dependencies{
		Out:       os.Stdout,
		ErrOut:    os.Stderr,
		LookupEnv: lookupEnv,
		NewHostInfo: func() gather.HostInfo {
			return hostinfo.New()
		},
		NewPublicIP: func(url string, timeout time.Duration, onFallback func(error)) gather.PublicAddressFetcher {
			client := ipecho.New(url, timeout)
			client.OnFallback = onFallback
			return client
		},
		NewContainerNamer: func() (gather.ContainerNamer, io.Closer, error) {
			client, err := newDockerClient()
			if err != nil {
				return nil, nil, err
			}
			namer := docker.NewNamer(client)
			return namer, namer, nil
		},
		NewSecretStore: func(ctx context.Context, cfg config.SecretsConfig) (gather.SecretFetcher, error) {
			return newSecretStore(ctx, cfg, secrets.Options{LookupEnv: lookupEnv})
		},
	}
}
