// Where: internal/config/config.go
// What: Server configuration model, defaults and loading.
// Why: Resolve defaults, the optional YAML file and INFOPAGE_* overrides into one struct.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/poruru/infopage/internal/constants"
	"github.com/poruru/infopage/internal/domain/page"
	"github.com/poruru/infopage/internal/envutil"
	"github.com/poruru/infopage/internal/meta"
	"gopkg.in/yaml.v3"
)

// Secret backend identifiers accepted in secrets.backend.
const (
	BackendKeyVault       = "keyvault"
	BackendSecretsManager = "secretsmanager"
	BackendS3             = "s3"
	BackendDynamoDB       = "dynamodb"
	BackendFile           = "file"
	BackendEnv            = "env"
)

// Log formats accepted in log.format.
const (
	LogFormatAuto    = "auto"
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

const defaultPublicIPTimeout = 5 * time.Second

// Config is the resolved process configuration.
type Config struct {
	Listen        string          `yaml:"listen"`
	MetricsListen string          `yaml:"metrics_listen,omitempty"`
	Variant       string          `yaml:"variant"`
	Template      string          `yaml:"template,omitempty"`
	PublicIP      PublicIPConfig  `yaml:"public_ip"`
	Container     ContainerConfig `yaml:"container"`
	Secrets       SecretsConfig   `yaml:"secrets"`
	Log           LogConfig       `yaml:"log"`
}

// PublicIPConfig configures the IP-echo lookup.
type PublicIPConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ContainerConfig configures container-name resolution.
type ContainerConfig struct {
	DockerLookup bool `yaml:"docker_lookup"`
}

// SecretsConfig selects and configures the secret store used by the vault variant.
// VaultName and SecretName are defaults; KEY_VAULT_NAME and SECRET_NAME win
// when set at request time.
type SecretsConfig struct {
	Backend        string        `yaml:"backend"`
	VaultName      string        `yaml:"vault_name,omitempty"`
	SecretName     string        `yaml:"secret_name,omitempty"`
	ClientID       string        `yaml:"client_id,omitempty"`
	Region         string        `yaml:"region,omitempty"`
	Endpoint       string        `yaml:"endpoint,omitempty"`
	KeyAttribute   string        `yaml:"key_attribute,omitempty"`
	ValueAttribute string        `yaml:"value_attribute,omitempty"`
	FilePath       string        `yaml:"file_path,omitempty"`
	EnvPrefix      string        `yaml:"env_prefix,omitempty"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	Timeout        time.Duration `yaml:"timeout"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing else is supplied.
func Default() Config {
	return Config{
		Listen:  meta.DefaultListen,
		Variant: string(page.VariantVault),
		PublicIP: PublicIPConfig{
			URL:     meta.DefaultPublicIPURL,
			Timeout: defaultPublicIPTimeout,
		},
		Secrets: SecretsConfig{
			Backend:        BackendKeyVault,
			KeyAttribute:   "name",
			ValueAttribute: "value",
			EnvPrefix:      meta.DefaultSecretEnvPref,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatAuto,
		},
	}
}

// Load returns defaults overlaid with the YAML file at path (when non-empty)
// and then with INFOPAGE_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(envutil.GetHostEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile validates the YAML file at path against the config schema and
// decodes it over cfg. Keys absent from the file keep their current values.
func LoadFile(path string, cfg *Config) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := validateDocument(payload); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil
	}
	normalizeZeroDurations(&doc)
	if err := doc.Decode(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

var durationKeys = map[string]struct{}{
	"timeout":   {},
	"cache_ttl": {},
}

// normalizeZeroDurations rewrites a bare integer 0 under a duration key to
// "0s"; yaml.v3 only decodes durations from strings.
func normalizeZeroDurations(node *yaml.Node) {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if _, ok := durationKeys[key.Value]; ok && value.Kind == yaml.ScalarNode && value.Tag == "!!int" && value.Value == "0" {
				value.Tag = "!!str"
				value.Value = "0s"
			}
		}
	}
	for _, child := range node.Content {
		normalizeZeroDurations(child)
	}
}

// ApplyEnv overlays process-level settings read through getenv, keyed by
// envutil.HostEnvKey suffixes. Empty values are ignored.
func (c *Config) ApplyEnv(getenv func(suffix string) string) error {
	if getenv == nil {
		return nil
	}
	setString := func(suffix string, target *string) {
		if value := strings.TrimSpace(getenv(suffix)); value != "" {
			*target = value
		}
	}
	setDuration := func(suffix string, target *time.Duration) error {
		value := strings.TrimSpace(getenv(suffix))
		if value == "" {
			return nil
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", envutil.HostEnvKey(suffix), err)
		}
		*target = parsed
		return nil
	}

	setString(constants.HostSuffixListen, &c.Listen)
	setString(constants.HostSuffixMetricsListen, &c.MetricsListen)
	setString(constants.HostSuffixVariant, &c.Variant)
	setString(constants.HostSuffixTemplate, &c.Template)
	setString(constants.HostSuffixPublicIPURL, &c.PublicIP.URL)
	setString(constants.HostSuffixSecretBackend, &c.Secrets.Backend)
	setString(constants.HostSuffixSecretVault, &c.Secrets.VaultName)
	setString(constants.HostSuffixSecretName, &c.Secrets.SecretName)
	setString(constants.HostSuffixSecretClientID, &c.Secrets.ClientID)
	setString(constants.HostSuffixSecretRegion, &c.Secrets.Region)
	setString(constants.HostSuffixSecretEndpoint, &c.Secrets.Endpoint)
	setString(constants.HostSuffixSecretKeyAttr, &c.Secrets.KeyAttribute)
	setString(constants.HostSuffixSecretValueAttr, &c.Secrets.ValueAttribute)
	setString(constants.HostSuffixSecretFilePath, &c.Secrets.FilePath)
	setString(constants.HostSuffixSecretEnvPrefix, &c.Secrets.EnvPrefix)
	setString(constants.HostSuffixLogLevel, &c.Log.Level)
	setString(constants.HostSuffixLogFormat, &c.Log.Format)

	if err := setDuration(constants.HostSuffixPublicIPTimeout, &c.PublicIP.Timeout); err != nil {
		return err
	}
	if err := setDuration(constants.HostSuffixSecretCacheTTL, &c.Secrets.CacheTTL); err != nil {
		return err
	}
	if err := setDuration(constants.HostSuffixSecretTimeout, &c.Secrets.Timeout); err != nil {
		return err
	}

	if value := strings.TrimSpace(getenv(constants.HostSuffixDockerLookup)); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", envutil.HostEnvKey(constants.HostSuffixDockerLookup), err)
		}
		c.Container.DockerLookup = enabled
	}
	return nil
}

// Validate checks cross-field and enum constraints that the schema cannot
// see once env and flag overrides have been applied.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("listen address is required")
	}
	if _, err := page.ParseVariant(c.Variant); err != nil {
		return err
	}
	parsed, err := url.Parse(c.PublicIP.URL)
	if err != nil {
		return fmt.Errorf("public_ip.url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("public_ip.url must be http or https: %s", c.PublicIP.URL)
	}
	if c.PublicIP.Timeout <= 0 {
		return fmt.Errorf("public_ip.timeout must be positive")
	}
	if c.Secrets.CacheTTL < 0 {
		return fmt.Errorf("secrets.cache_ttl must not be negative")
	}
	if c.Secrets.Timeout < 0 {
		return fmt.Errorf("secrets.timeout must not be negative")
	}
	switch c.Secrets.Backend {
	case BackendKeyVault, BackendSecretsManager, BackendS3, BackendDynamoDB, BackendEnv:
	case BackendFile:
		if strings.TrimSpace(c.Secrets.FilePath) == "" {
			return fmt.Errorf("secrets.file_path is required for the file backend")
		}
	default:
		return fmt.Errorf("unsupported secrets.backend: %q", c.Secrets.Backend)
	}
	switch c.Log.Format {
	case LogFormatAuto, LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("unsupported log.format: %q", c.Log.Format)
	}
	return nil
}

// PageVariant returns the parsed variant. Call Validate first.
func (c Config) PageVariant() page.Variant {
	variant, _ := page.ParseVariant(c.Variant)
	return variant
}
