// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Show the build revision in the page footer, logs and the version command.
package version

import (
	"fmt"
	"runtime/debug"
)

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the short VCS revision of the running binary,
// "<rev> (dirty)" for modified trees, or "dev" when no revision was stamped.
func GetVersion() string {
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	return fromSettings(info.Settings)
}

// GoVersion returns the toolchain the binary was built with.
func GoVersion() string {
	info, ok := readBuildInfo()
	if !ok || info.GoVersion == "" {
		return "unknown"
	}
	return info.GoVersion
}

func fromSettings(settings []debug.BuildSetting) string {
	var revision string
	var modified bool

	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
