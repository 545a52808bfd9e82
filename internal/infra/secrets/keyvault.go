// Where: internal/infra/secrets/keyvault.go
// What: Azure Key Vault backend authenticated with a managed identity.
// Why: The vault page reads its secret from https://<vault>.vault.azure.net.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// keyVaultClient is the subset of *azsecrets.Client used here.
type keyVaultClient interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

var newManagedIdentityCredential = func(clientID string) (azcore.TokenCredential, error) {
	opts := &azidentity.ManagedIdentityCredentialOptions{}
	if clientID != "" {
		opts.ID = azidentity.ClientID(clientID)
	}
	return azidentity.NewManagedIdentityCredential(opts)
}

var newKeyVaultClient = func(vaultURL string, credential azcore.TokenCredential) (keyVaultClient, error) {
	return azsecrets.NewClient(vaultURL, credential, nil)
}

// VaultURL returns the Key Vault endpoint for a vault name.
func VaultURL(vault string) string {
	return fmt.Sprintf("https://%s.vault.azure.net", vault)
}

// KeyVault reads secrets from Azure Key Vault. One client is kept per vault.
type KeyVault struct {
	credential azcore.TokenCredential
	clients    sync.Map
}

// NewKeyVault builds a managed-identity credential. clientID selects a
// user-assigned identity; empty means the system-assigned one.
func NewKeyVault(clientID string) (*KeyVault, error) {
	credential, err := newManagedIdentityCredential(strings.TrimSpace(clientID))
	if err != nil {
		return nil, fmt.Errorf("create managed identity credential: %w", err)
	}
	return &KeyVault{credential: credential}, nil
}

// GetSecret returns the latest version of name from vault.
func (k *KeyVault) GetSecret(ctx context.Context, vault, name string) (string, error) {
	vault = strings.TrimSpace(vault)
	if vault == "" {
		return "", fmt.Errorf("key vault name is required")
	}
	if err := requireName(name); err != nil {
		return "", err
	}
	client, err := k.client(vault)
	if err != nil {
		return "", err
	}
	resp, err := client.GetSecret(ctx, name, "", nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return "", notFound(vault, name)
		}
		return "", fmt.Errorf("get secret %s from key vault %s: %w", name, vault, err)
	}
	if resp.Value == nil {
		return "", notFound(vault, name)
	}
	return *resp.Value, nil
}

func (k *KeyVault) client(vault string) (keyVaultClient, error) {
	if value, ok := k.clients.Load(vault); ok {
		return value.(keyVaultClient), nil
	}
	client, err := newKeyVaultClient(VaultURL(vault), k.credential)
	if err != nil {
		return nil, fmt.Errorf("create key vault client for %s: %w", vault, err)
	}
	actual, _ := k.clients.LoadOrStore(vault, client)
	return actual.(keyVaultClient), nil
}
