// Where: internal/command/render.go
// What: render command.
// Why: Produce one page without a listener, for health checks and debugging.
package command

import (
	"context"
	"io"

	"github.com/poruru/infopage/internal/config"
	"github.com/rs/zerolog"
)

func runRender(ctx context.Context, cfg config.Config, deps Dependencies, logger zerolog.Logger) int {
	p, err := buildPipeline(ctx, cfg, deps, nil, logger)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	defer p.Close()

	pageCtx, err := p.gatherer.Gather(ctx)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	body, err := p.renderer.Render(pageCtx)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	_, _ = io.WriteString(deps.Out, body)
	return 0
}
