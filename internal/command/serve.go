// Where: internal/command/serve.go
// What: serve command.
// Why: Run the explicit server until the process is signaled.
package command

import (
	"context"

	"github.com/poruru/infopage/internal/config"
	"github.com/poruru/infopage/internal/server"
	"github.com/rs/zerolog"
)

func runServe(ctx context.Context, cfg config.Config, deps Dependencies, logger zerolog.Logger) int {
	metrics := server.NewMetrics()
	p, err := buildPipeline(ctx, cfg, deps, metrics, logger)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	defer p.Close()

	srv := server.New(server.Config{
		Listen:        cfg.Listen,
		MetricsListen: cfg.MetricsListen,
	}, p.gatherer, p.renderer, metrics, logger)

	logger.Info().
		Str("variant", cfg.Variant).
		Str("secret_backend", cfg.Secrets.Backend).
		Bool("secret_cache", cfg.Secrets.CacheTTL > 0).
		Msg("starting")

	run := deps.RunServer
	if run == nil {
		run = func(ctx context.Context, srv *server.Server) error { return srv.Run(ctx) }
	}
	if err := run(ctx, srv); err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	return 0
}
