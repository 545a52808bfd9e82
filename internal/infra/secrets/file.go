// Where: internal/infra/secrets/file.go
// What: Local file backend holding a flat name -> value document.
// Why: Run the vault page on a laptop without a cloud account.
package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

// File reads a JSON (or YAML) object of string values. The file is read on
// every call so edits show up without a restart. The vault argument is ignored.
type File struct {
	path string
}

// NewFile returns a File backend for path.
func NewFile(path string) *File {
	return &File{path: path}
}

// GetSecret looks name up in the document.
func (f *File) GetSecret(_ context.Context, _ string, name string) (string, error) {
	if err := requireName(name); err != nil {
		return "", err
	}
	if strings.TrimSpace(f.path) == "" {
		return "", fmt.Errorf("secret file path is required")
	}
	content, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("read secret file %s: %w", f.path, err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(content, &values); err != nil {
		return "", fmt.Errorf("decode secret file %s: %w", f.path, err)
	}
	value, ok := values[name]
	if !ok {
		return "", notFound("", name)
	}
	return value, nil
}
