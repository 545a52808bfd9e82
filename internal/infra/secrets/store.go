// Where: internal/infra/secrets/store.go
// What: Secret store contract, sentinel errors and backend selection.
// Why: The vault page only needs "container + name -> value"; backends stay swappable.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/poruru/infopage/internal/config"
)

var (
	// ErrSecretNotFound is returned when the backend has no such secret.
	ErrSecretNotFound = errors.New("secret not found")
	// ErrUnsupportedBackend is returned for unknown backend identifiers.
	ErrUnsupportedBackend = errors.New("unsupported secret backend")
)

// Store fetches a named secret. vault names the backend's container
// (Key Vault name, S3 bucket, DynamoDB table) and is ignored by backends
// that have none.
type Store interface {
	GetSecret(ctx context.Context, vault, name string) (string, error)
}

// StoreFunc adapts a function to Store.
type StoreFunc func(ctx context.Context, vault, name string) (string, error)

// GetSecret calls f.
func (f StoreFunc) GetSecret(ctx context.Context, vault, name string) (string, error) {
	return f(ctx, vault, name)
}

// Options carries process collaborators the backends need.
type Options struct {
	// LookupEnv backs the env backend; nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// New builds the configured backend and wraps it with the optional timeout
// and cache layers. The cache sits outside the timeout so hits never wait.
func New(ctx context.Context, cfg config.SecretsConfig, opts Options) (Store, error) {
	backend, err := newBackend(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	store := WithTimeout(backend, cfg.Timeout)
	return WithCache(store, cfg.CacheTTL), nil
}

func newBackend(ctx context.Context, cfg config.SecretsConfig, opts Options) (Store, error) {
	switch strings.TrimSpace(cfg.Backend) {
	case config.BackendKeyVault:
		return NewKeyVault(cfg.ClientID)
	case config.BackendSecretsManager:
		awsCfg, err := loadAWSConfig(ctx, cfg.Region, cfg.Endpoint)
		if err != nil {
			return nil, err
		}
		return NewSecretsManager(newSecretsManagerClient(awsCfg, cfg.Endpoint)), nil
	case config.BackendS3:
		awsCfg, err := loadAWSConfig(ctx, cfg.Region, cfg.Endpoint)
		if err != nil {
			return nil, err
		}
		return NewS3(newS3Client(awsCfg, cfg.Endpoint)), nil
	case config.BackendDynamoDB:
		awsCfg, err := loadAWSConfig(ctx, cfg.Region, cfg.Endpoint)
		if err != nil {
			return nil, err
		}
		return NewDynamoDB(newDynamoDBClient(awsCfg, cfg.Endpoint), cfg.KeyAttribute, cfg.ValueAttribute), nil
	case config.BackendFile:
		return NewFile(cfg.FilePath), nil
	case config.BackendEnv:
		return NewEnv(cfg.EnvPrefix, opts.LookupEnv), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
}

func notFound(vault, name string) error {
	if vault == "" {
		return fmt.Errorf("%w: %s", ErrSecretNotFound, name)
	}
	return fmt.Errorf("%w: %s/%s", ErrSecretNotFound, vault, name)
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("secret name is required")
	}
	return nil
}
