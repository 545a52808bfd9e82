// Where: internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/poruru/infopage/internal/config"
	"github.com/poruru/infopage/internal/constants"
	"github.com/poruru/infopage/internal/envutil"
	"github.com/poruru/infopage/internal/logging"
	"github.com/poruru/infopage/internal/server"
	"github.com/poruru/infopage/internal/usecase/gather"
	"github.com/poruru/infopage/internal/version"
	"github.com/rs/zerolog"
)

// Dependencies holds the factories used to build the page pipeline.
// cmd/infopage supplies the real clients; tests supply fakes.
type Dependencies struct {
	Out       io.Writer
	ErrOut    io.Writer
	LookupEnv envutil.LookupFunc

	NewHostInfo       func() gather.HostInfo
	NewPublicIP       func(url string, timeout time.Duration, onFallback func(error)) gather.PublicAddressFetcher
	NewContainerNamer func() (gather.ContainerNamer, io.Closer, error)
	NewSecretStore    func(ctx context.Context, cfg config.SecretsConfig) (gather.SecretFetcher, error)

	// RunServer blocks until ctx is canceled. Defaults to (*server.Server).Run.
	RunServer func(ctx context.Context, srv *server.Server) error
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Config    string `short:"c" help:"Path to YAML config file (default: $INFOPAGE_CONFIG)"`
	EnvFile   string `name:"env-file" help:"Path to .env file"`
	LogLevel  string `name:"log-level" help:"Log level (trace/debug/info/warn/error)"`
	LogFormat string `name:"log-format" help:"Log format (auto/console/json)"`

	Serve    ServeCmd    `cmd:"" default:"withargs" help:"Serve the info page (default)"`
	Render   RenderCmd   `cmd:"" help:"Gather and render one page to stdout"`
	Settings SettingsCmd `cmd:"" help:"Show effective settings"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

type (
	// PageFlags select what is rendered; shared by serve and render.
	PageFlags struct {
		Variant      string `short:"V" help:"Page variant (lite/messages/vault)"`
		Template     string `help:"Template file overriding the embedded page"`
		DockerLookup bool   `name:"docker-lookup" help:"Resolve the container name through the Docker Engine API"`
	}

	// ServeCmd defines the serve command flags.
	ServeCmd struct {
		PageFlags     `embed:""`
		Listen        string `short:"l" help:"Listen address (default: 0.0.0.0:5000)"`
		MetricsListen string `name:"metrics-listen" help:"Listen address for /metrics (disabled when empty)"`
	}

	// RenderCmd defines the render command flags.
	RenderCmd struct {
		PageFlags `embed:""`
	}

	SettingsCmd struct{}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, loads configuration and dispatches
// to the requested handler. Returns 0 on success, 1 on error.
func Run(ctx context.Context, args []string, deps Dependencies) int {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(cliName()),
		kong.Description("Serve a page describing the container it runs in."),
		kong.Writers(deps.Out, deps.ErrOut),
	)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(err, deps.ErrOut)
	}

	loadEnvFile(cli.EnvFile, deps.ErrOut)

	command := kctx.Command()
	if command == "version" {
		return runVersion(deps.Out)
	}

	cfg, err := resolveConfig(cli, command)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	logger, err := logging.New(deps.ErrOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	ctx = logger.WithContext(ctx)

	if exitCode, handled := dispatchCommand(ctx, command, cfg, cli, deps, logger); handled {
		return exitCode
	}

	return exitWithError(deps.ErrOut, fmt.Errorf("unknown command: %s", command))
}

type commandHandler func(context.Context, config.Config, Dependencies, zerolog.Logger) int

func dispatchCommand(
	ctx context.Context,
	command string,
	cfg config.Config,
	cli CLI,
	deps Dependencies,
	logger zerolog.Logger,
) (int, bool) {
	handlers := map[string]commandHandler{
		"serve":  runServe,
		"render": runRender,
		"settings": func(_ context.Context, cfg config.Config, deps Dependencies, _ zerolog.Logger) int {
			return runSettings(cfg, configPath(cli), deps.Out)
		},
	}
	if handler, ok := handlers[command]; ok {
		return handler(ctx, cfg, deps, logger), true
	}
	return 1, false
}

// resolveConfig layers defaults, the config file, INFOPAGE_* env and flags,
// then validates the result.
func resolveConfig(cli CLI, command string) (config.Config, error) {
	cfg, err := config.Load(configPath(cli))
	if err != nil {
		return config.Config{}, err
	}
	applyFlags(&cfg, cli, command)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func configPath(cli CLI) string {
	if path := strings.TrimSpace(cli.Config); path != "" {
		return path
	}
	return strings.TrimSpace(envutil.GetHostEnv(constants.HostSuffixConfig))
}

func applyFlags(cfg *config.Config, cli CLI, command string) {
	setString := func(value string, target *string) {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			*target = trimmed
		}
	}
	setString(cli.LogLevel, &cfg.Log.Level)
	setString(cli.LogFormat, &cfg.Log.Format)

	var page PageFlags
	switch command {
	case "serve":
		page = cli.Serve.PageFlags
		setString(cli.Serve.Listen, &cfg.Listen)
		setString(cli.Serve.MetricsListen, &cfg.MetricsListen)
	case "render":
		page = cli.Render.PageFlags
	default:
		return
	}
	setString(page.Variant, &cfg.Variant)
	setString(page.Template, &cfg.Template)
	if page.DockerLookup {
		cfg.Container.DockerLookup = true
	}
}

// loadEnvFile loads --env-file, or ./.env when present. Existing variables win.
func loadEnvFile(path string, errOut io.Writer) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			consoleUI(errOut).Warn(fmt.Sprintf("Warning: failed to load env file %s: %v", path, err))
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			consoleUI(errOut).Warn(fmt.Sprintf("Warning: failed to load .env: %v", err))
		}
	}
}

// runVersion prints the version information of the binary.
func runVersion(out io.Writer) int {
	consoleUI(out).Info(version.GetVersion())
	return 0
}

// handleParseError adds a hint for flags that are missing their value.
func handleParseError(err error, out io.Writer) int {
	msg := err.Error()
	if strings.Contains(msg, "expected string value") {
		ui := consoleUI(out)
		switch {
		case strings.Contains(msg, "--config"):
			ui.Warn("`-c/--config` expects a value. Provide a path to a YAML file.")
			ui.Info(fmt.Sprintf("Example: %s serve -c ./infopage.yaml", cliName()))
			return 1
		case strings.Contains(msg, "--variant"):
			ui.Warn("`-V/--variant` expects a value: lite, messages or vault.")
			ui.Info(fmt.Sprintf("Example: %s serve -V lite", cliName()))
			return 1
		case strings.Contains(msg, "--env-file"):
			ui.Warn("`--env-file` expects a value. Provide a file path.")
			ui.Info(fmt.Sprintf("Example: %s serve --env-file .env.prod", cliName()))
			return 1
		}
	}
	return exitWithError(out, err)
}
