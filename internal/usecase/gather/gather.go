// Where: internal/usecase/gather/gather.go
// What: Build a page.Context for one request.
// Why: Keep per-variant fact collection independent of HTTP and of concrete clients.
package gather

import (
	"context"
	"errors"
	"fmt"

	"github.com/poruru/infopage/internal/constants"
	"github.com/poruru/infopage/internal/domain/page"
	"github.com/poruru/infopage/internal/envutil"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrMissingConfig is returned when the vault variant has no vault or secret name.
var ErrMissingConfig = errors.New("missing secret configuration")

// HostInfo resolves the machine's hostname and local address.
type HostInfo interface {
	HostName() (string, error)
	LocalAddress(ctx context.Context) (string, error)
}

// PublicAddressFetcher returns the public address or a placeholder; it never fails.
type PublicAddressFetcher interface {
	PublicAddress(ctx context.Context) string
}

// ContainerNamer maps a container id (the hostname inside a container) to its name.
type ContainerNamer interface {
	ContainerName(ctx context.Context, id string) (string, error)
}

// SecretFetcher fetches one secret.
type SecretFetcher interface {
	GetSecret(ctx context.Context, vault, name string) (string, error)
}

// Options are fixed for the life of the process.
type Options struct {
	Variant page.Variant
	Version string
	// VaultName and SecretName apply when KEY_VAULT_NAME / SECRET_NAME are unset.
	VaultName  string
	SecretName string
	// RequireVault is set for backends that address secrets by container.
	RequireVault bool
}

// Gatherer collects the facts a variant renders.
type Gatherer struct {
	Options    Options
	Host       HostInfo
	PublicIP   PublicAddressFetcher
	Containers ContainerNamer
	Secrets    SecretFetcher
	LookupEnv  envutil.LookupFunc
	// OnSecretError observes secret fetch failures before they propagate.
	OnSecretError func(error)
}

// Gather builds a fresh page.Context. Environment values are read on every
// call. Outbound calls share ctx and run concurrently; the first hard
// failure cancels the rest.
func (g *Gatherer) Gather(ctx context.Context) (page.Context, error) {
	result := page.Context{
		Variant: g.Options.Variant,
		Version: g.Options.Version,
	}

	switch g.Options.Variant {
	case page.VariantMessages:
		result.DockerMessage = g.env(constants.EnvDockerEnv, constants.DefaultMessage)
		result.TFMessage = g.env(constants.EnvTFEnv, constants.DefaultMessage)
		return result, nil
	case page.VariantLite, page.VariantVault:
	default:
		return page.Context{}, fmt.Errorf("unsupported variant: %q", g.Options.Variant)
	}

	var vault, secretName string
	if g.Options.Variant.UsesSecret() {
		var err error
		vault, secretName, err = g.secretCoordinates()
		if err != nil {
			return page.Context{}, err
		}
	}
	if g.Host == nil || g.PublicIP == nil {
		return page.Context{}, fmt.Errorf("gatherer not configured")
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		name, err := g.containerName(groupCtx)
		if err != nil {
			return err
		}
		result.ContainerName = name
		return nil
	})
	group.Go(func() error {
		addr, err := g.Host.LocalAddress(groupCtx)
		if err != nil {
			return err
		}
		result.LocalAddress = addr
		return nil
	})
	group.Go(func() error {
		result.PublicAddress = g.PublicIP.PublicAddress(groupCtx)
		return nil
	})
	if g.Options.Variant.UsesSecret() {
		group.Go(func() error {
			value, err := g.Secrets.GetSecret(groupCtx, vault, secretName)
			if err != nil {
				if g.OnSecretError != nil {
					g.OnSecretError(err)
				}
				return fmt.Errorf("fetch secret %s: %w", secretName, err)
			}
			result.SecretValue = value
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return page.Context{}, err
	}
	return result, nil
}

func (g *Gatherer) secretCoordinates() (string, string, error) {
	if g.Secrets == nil {
		return "", "", fmt.Errorf("%w: no secret store", ErrMissingConfig)
	}
	vault := g.env(constants.EnvKeyVaultName, g.Options.VaultName)
	name := g.env(constants.EnvSecretName, g.Options.SecretName)
	if g.Options.RequireVault && vault == "" {
		return "", "", fmt.Errorf("%w: %s is not set", ErrMissingConfig, constants.EnvKeyVaultName)
	}
	if name == "" {
		return "", "", fmt.Errorf("%w: %s is not set", ErrMissingConfig, constants.EnvSecretName)
	}
	return vault, name, nil
}

// containerName prefers CONTAINER_NAME, then the Docker name, then the hostname.
func (g *Gatherer) containerName(ctx context.Context) (string, error) {
	if name := g.env(constants.EnvContainerName, ""); name != "" {
		return name, nil
	}
	hostname, err := g.Host.HostName()
	if err != nil {
		return "", err
	}
	if g.Containers == nil {
		return hostname, nil
	}
	name, err := g.Containers.ContainerName(ctx, hostname)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("hostname", hostname).Msg("docker name lookup failed, using hostname")
		return hostname, nil
	}
	return name, nil
}

func (g *Gatherer) env(key, fallback string) string {
	return envutil.ValueOrDefault(g.LookupEnv, key, fallback)
}
