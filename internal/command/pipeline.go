// Where: internal/command/pipeline.go
// What: Assemble the gatherer and renderer from config and injected factories.
// Why: serve and render share one construction path.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/poruru/infopage/internal/config"
	"github.com/poruru/infopage/internal/domain/page"
	"github.com/poruru/infopage/internal/server"
	"github.com/poruru/infopage/internal/usecase/gather"
	"github.com/poruru/infopage/internal/version"
	"github.com/rs/zerolog"
)

var errDependencyMissing = errors.New("dependency not configured")

// pipeline is everything a page request needs.
type pipeline struct {
	gatherer *gather.Gatherer
	renderer *page.Renderer
	closers  []io.Closer
}

func (p *pipeline) Close() {
	for _, closer := range p.closers {
		_ = closer.Close()
	}
}

func buildPipeline(
	ctx context.Context,
	cfg config.Config,
	deps Dependencies,
	metrics *server.Metrics,
	logger zerolog.Logger,
) (*pipeline, error) {
	variant := cfg.PageVariant()
	renderer, err := page.NewRenderer(variant, cfg.Template)
	if err != nil {
		return nil, err
	}

	result := &pipeline{renderer: renderer}
	g := &gather.Gatherer{
		Options: gather.Options{
			Variant:      variant,
			Version:      version.GetVersion(),
			VaultName:    cfg.Secrets.VaultName,
			SecretName:   cfg.Secrets.SecretName,
			RequireVault: requiresVault(cfg.Secrets.Backend),
		},
		LookupEnv:     deps.LookupEnv,
		OnSecretError: metrics.SecretFetchError,
	}
	result.gatherer = g

	if !variant.UsesHostFacts() {
		return result, nil
	}

	if deps.NewHostInfo == nil || deps.NewPublicIP == nil {
		return nil, fmt.Errorf("host facts: %w", errDependencyMissing)
	}
	g.Host = deps.NewHostInfo()
	g.PublicIP = deps.NewPublicIP(cfg.PublicIP.URL, cfg.PublicIP.Timeout, func(err error) {
		metrics.PublicAddressFallback(err)
		logger.Warn().Err(err).Msg("public address unavailable")
	})

	if cfg.Container.DockerLookup && deps.NewContainerNamer != nil {
		namer, closer, err := deps.NewContainerNamer()
		if err != nil {
			logger.Warn().Err(err).Msg("docker lookup disabled")
		} else {
			g.Containers = namer
			if closer != nil {
				result.closers = append(result.closers, closer)
			}
		}
	}

	if variant.UsesSecret() {
		if deps.NewSecretStore == nil {
			result.Close()
			return nil, fmt.Errorf("secret store: %w", errDependencyMissing)
		}
		store, err := deps.NewSecretStore(ctx, cfg.Secrets)
		if err != nil {
			result.Close()
			return nil, fmt.Errorf("secret store: %w", err)
		}
		g.Secrets = store
	}
	return result, nil
}

// requiresVault reports whether the backend addresses secrets by container.
func requiresVault(backend string) bool {
	switch backend {
	case config.BackendKeyVault, config.BackendS3, config.BackendDynamoDB:
		return true
	default:
		return false
	}
}
