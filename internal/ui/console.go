// Where: internal/ui/console.go
// What: Console output helpers for the non-server commands.
// Why: Keep settings/version/error output consistent.
package ui

import (
	"fmt"
	"io"
)

// Console provides helper methods for formatted output.
type Console struct {
	Out io.Writer
}

// New creates a new Console writing to the provided writer.
func New(out io.Writer) *Console {
	return &Console{Out: out}
}

// Header prints a section header with an emoji.
// Example: ⚙️  Settings
func (c *Console) Header(emoji, title string) {
	fmt.Fprintf(c.Out, "%s %s\n", emoji, title)
}

// Item prints a key-value item with indentation.
// Example:    listen:            0.0.0.0:5000
func (c *Console) Item(key string, value any) {
	fmt.Fprintf(c.Out, "   %-18s %v\n", key+":", value)
}

// Blank prints an empty separator line.
func (c *Console) Blank() {
	fmt.Fprintln(c.Out)
}

// Info prints a plain informational line.
func (c *Console) Info(msg string) {
	fmt.Fprintln(c.Out, msg)
}

// Warn prints an error or warning line.
func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.Out, msg)
}
