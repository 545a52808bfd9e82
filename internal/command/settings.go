// Where: internal/command/settings.go
// What: settings command.
// Why: Show the effective configuration after all overrides, without secret values.
package command

import (
	"io"

	"github.com/poruru/infopage/internal/config"
)

func runSettings(cfg config.Config, path string, out io.Writer) int {
	ui := consoleUI(out)
	ui.Header("⚙️ ", "Settings")
	ui.Item("config file", orNone(path))
	ui.Item("listen", cfg.Listen)
	ui.Item("metrics listen", orNone(cfg.MetricsListen))
	ui.Item("variant", cfg.Variant)
	ui.Item("template", orNone(cfg.Template))
	ui.Blank()

	ui.Header("🌐", "Host facts")
	ui.Item("public ip url", cfg.PublicIP.URL)
	ui.Item("public ip timeout", cfg.PublicIP.Timeout)
	ui.Item("docker lookup", cfg.Container.DockerLookup)
	ui.Blank()

	ui.Header("🔑", "Secrets")
	ui.Item("backend", cfg.Secrets.Backend)
	ui.Item("vault name", orNone(cfg.Secrets.VaultName))
	ui.Item("secret name", orNone(cfg.Secrets.SecretName))
	switch cfg.Secrets.Backend {
	case config.BackendKeyVault:
		ui.Item("client id", orNone(cfg.Secrets.ClientID))
	case config.BackendSecretsManager, config.BackendS3, config.BackendDynamoDB:
		ui.Item("region", orNone(cfg.Secrets.Region))
		ui.Item("endpoint", orNone(cfg.Secrets.Endpoint))
		if cfg.Secrets.Backend == config.BackendDynamoDB {
			ui.Item("key attribute", cfg.Secrets.KeyAttribute)
			ui.Item("value attribute", cfg.Secrets.ValueAttribute)
		}
	case config.BackendFile:
		ui.Item("file path", cfg.Secrets.FilePath)
	case config.BackendEnv:
		ui.Item("env prefix", cfg.Secrets.EnvPrefix)
	}
	ui.Item("cache ttl", cfg.Secrets.CacheTTL)
	ui.Item("timeout", cfg.Secrets.Timeout)
	ui.Blank()

	ui.Header("📝", "Logging")
	ui.Item("level", cfg.Log.Level)
	ui.Item("format", cfg.Log.Format)
	return 0
}

func orNone(value string) string {
	if value == "" {
		return "(none)"
	}
	return value
}
