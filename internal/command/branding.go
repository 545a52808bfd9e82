// Where: internal/command/branding.go
// What: CLI naming helpers.
// Why: Keep user-facing command names consistent when the binary is renamed.
package command

import (
	"os"
	"strings"

	"github.com/poruru/infopage/internal/meta"
)

func cliName() string {
	name := strings.TrimSpace(os.Getenv("CLI_CMD"))
	if name == "" {
		name = strings.TrimSpace(meta.AppName)
	}
	if name == "" {
		name = "infopage"
	}
	return name
}
