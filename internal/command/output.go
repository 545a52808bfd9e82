// Where: internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize console usage for non-server output.
package command

import (
	"io"

	"github.com/poruru/infopage/internal/ui"
)

func consoleUI(out io.Writer) *ui.Console {
	return ui.New(out)
}
