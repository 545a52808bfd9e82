// Where: internal/constants/env.go
// What: Environment variable naming constants.
// Why: Centralize environment variable names to avoid typos and inconsistencies.
package constants

const (
	// Page inputs, read on every request
	EnvContainerName = "CONTAINER_NAME"
	EnvDockerEnv     = "DOCKER_ENV"
	EnvTFEnv         = "TF_ENV"
	EnvKeyVaultName  = "KEY_VAULT_NAME"
	EnvSecretName    = "SECRET_NAME"

	// Prefix override for process-level settings (INFOPAGE_* by default)
	EnvPrefixOverride = "ENV_PREFIX"
)

// Suffixes for process-level settings. Combined with the env prefix by
// envutil.HostEnvKey, e.g. "LISTEN" -> INFOPAGE_LISTEN.
const (
	HostSuffixConfig          = "CONFIG"
	HostSuffixListen          = "LISTEN"
	HostSuffixMetricsListen   = "METRICS_LISTEN"
	HostSuffixVariant         = "VARIANT"
	HostSuffixTemplate        = "TEMPLATE"
	HostSuffixPublicIPURL     = "PUBLIC_IP_URL"
	HostSuffixPublicIPTimeout = "PUBLIC_IP_TIMEOUT"
	HostSuffixDockerLookup    = "DOCKER_LOOKUP"
	HostSuffixSecretBackend   = "SECRET_BACKEND"
	HostSuffixSecretCacheTTL  = "SECRET_CACHE_TTL"
	HostSuffixSecretTimeout   = "SECRET_TIMEOUT"
	HostSuffixSecretVault     = "SECRET_VAULT_NAME"
	HostSuffixSecretName      = "SECRET_SECRET_NAME"
	HostSuffixSecretClientID  = "SECRET_CLIENT_ID"
	HostSuffixSecretRegion    = "SECRET_REGION"
	HostSuffixSecretEndpoint  = "SECRET_ENDPOINT"
	HostSuffixSecretKeyAttr   = "SECRET_KEY_ATTRIBUTE"
	HostSuffixSecretValueAttr = "SECRET_VALUE_ATTRIBUTE"
	HostSuffixSecretFilePath  = "SECRET_FILE_PATH"
	HostSuffixSecretEnvPrefix = "SECRET_ENV_PREFIX"
	HostSuffixLogLevel        = "LOG_LEVEL"
	HostSuffixLogFormat       = "LOG_FORMAT"
)

// DefaultMessage is what the messages variant shows when DOCKER_ENV or TF_ENV is unset.
const DefaultMessage = "Default message from Container"
