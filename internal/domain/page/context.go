// Where: internal/domain/page/context.go
// What: Page variants and the per-request page context.
// Why: Give the gatherer and renderer one shared vocabulary.
package page

import (
	"fmt"
	"strings"
)

// Variant selects which facts are gathered and which template is rendered.
type Variant string

const (
	// VariantMessages shows DOCKER_ENV and TF_ENV.
	VariantMessages Variant = "messages"
	// VariantLite shows container name, local and public address.
	VariantLite Variant = "lite"
	// VariantVault shows everything VariantLite does plus a secret.
	VariantVault Variant = "vault"
)

// Variants lists every supported variant in display order.
var Variants = []Variant{VariantLite, VariantMessages, VariantVault}

// ParseVariant maps a config value to a Variant.
func ParseVariant(value string) (Variant, error) {
	normalized := Variant(strings.ToLower(strings.TrimSpace(value)))
	for _, candidate := range Variants {
		if normalized == candidate {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unsupported variant: %q", value)
}

// UsesHostFacts reports whether the variant needs container name and addresses.
func (v Variant) UsesHostFacts() bool {
	return v == VariantLite || v == VariantVault
}

// UsesSecret reports whether the variant fetches a secret.
func (v Variant) UsesSecret() bool {
	return v == VariantVault
}

// Context is built fresh for every request and discarded after rendering.
// Fields a variant does not gather stay empty.
type Context struct {
	Variant       Variant
	Version       string
	ContainerName string
	LocalAddress  string
	PublicAddress string
	DockerMessage string
	TFMessage     string
	SecretValue   string
}
