// Where: internal/meta/meta.go
// What: Project identity constants.
// Why: Keep naming (binary, env prefix, metric namespace) in one place.
package meta

const (
	// Project Identity
	AppName         = "infopage"
	EnvPrefix       = "INFOPAGE"
	MetricNamespace = "infopage"

	// Defaults shared by config and CLI help
	DefaultListen        = "0.0.0.0:5000"
	DefaultPublicIPURL   = "https://api64.ipify.org?format=text"
	DefaultSecretEnvPref = "INFOPAGE_SECRET_"
)
