// Where: internal/infra/secrets/secretsmanager.go
// What: AWS Secrets Manager backend.
// Why: Let the vault page run outside Azure.
package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// secretsManagerClient is the subset of *secretsmanager.Client used here.
type secretsManagerClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManager reads secrets by id. The vault argument is ignored.
type SecretsManager struct {
	client secretsManagerClient
}

// NewSecretsManager wraps a Secrets Manager client.
func NewSecretsManager(client secretsManagerClient) *SecretsManager {
	return &SecretsManager{client: client}
}

// GetSecret returns SecretString, or SecretBinary as text when no string is set.
func (s *SecretsManager) GetSecret(ctx context.Context, _ string, name string) (string, error) {
	if err := requireName(name); err != nil {
		return "", err
	}
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		var missing *smtypes.ResourceNotFoundException
		if errors.As(err, &missing) {
			return "", notFound("", name)
		}
		return "", fmt.Errorf("get secret %s from secrets manager: %w", name, err)
	}
	if out.SecretString != nil {
		return *out.SecretString, nil
	}
	if out.SecretBinary != nil {
		return string(out.SecretBinary), nil
	}
	return "", notFound("", name)
}
