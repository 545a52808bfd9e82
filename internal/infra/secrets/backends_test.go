// Where: internal/infra/secrets/backends_test.go
// What: Tests for each secret backend against fake SDK clients.
// Why: Lock request shapes and not-found mapping per backend.
package secrets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredential struct{}

func (fakeCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "token"}, nil
}

type fakeKeyVaultClient struct {
	values map[string]string
	err    error
	calls  int32
}

func (f *fakeKeyVaultClient) GetSecret(_ context.Context, name, version string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return azsecrets.GetSecretResponse{}, f.err
	}
	if version != "" {
		return azsecrets.GetSecretResponse{}, errors.New("unexpected version")
	}
	value, ok := f.values[name]
	if !ok {
		return azsecrets.GetSecretResponse{}, &azcore.ResponseError{StatusCode: http.StatusNotFound, ErrorCode: "SecretNotFound"}
	}
	return azsecrets.GetSecretResponse{Secret: azsecrets.Secret{Value: &value}}, nil
}

func stubKeyVault(t *testing.T, client *fakeKeyVaultClient) *[]string {
	t.Helper()
	var urls []string
	originalCred := newManagedIdentityCredential
	originalClient := newKeyVaultClient
	t.Cleanup(func() {
		newManagedIdentityCredential = originalCred
		newKeyVaultClient = originalClient
	})
	newManagedIdentityCredential = func(string) (azcore.TokenCredential, error) {
		return fakeCredential{}, nil
	}
	newKeyVaultClient = func(vaultURL string, _ azcore.TokenCredential) (keyVaultClient, error) {
		urls = append(urls, vaultURL)
		return client, nil
	}
	return &urls
}

func TestKeyVaultGetSecret(t *testing.T) {
	client := &fakeKeyVaultClient{values: map[string]string{"db-password": "hunter2"}}
	urls := stubKeyVault(t, client)

	store, err := NewKeyVault("")
	require.NoError(t, err)

	value, err := store.GetSecret(context.Background(), "my-vault", "db-password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)

	_, err = store.GetSecret(context.Background(), "my-vault", "db-password")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://my-vault.vault.azure.net"}, *urls, "client is reused per vault")
	assert.EqualValues(t, 2, client.calls)
}

func TestKeyVaultErrors(t *testing.T) {
	client := &fakeKeyVaultClient{values: map[string]string{}}
	stubKeyVault(t, client)
	store, err := NewKeyVault("client-id")
	require.NoError(t, err)

	_, err = store.GetSecret(context.Background(), "my-vault", "missing")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	_, err = store.GetSecret(context.Background(), "", "db-password")
	assert.Error(t, err)

	_, err = store.GetSecret(context.Background(), "my-vault", " ")
	assert.Error(t, err)

	boom := errors.New("ManagedIdentityCredential: no identity endpoint")
	client.err = boom
	_, err = store.GetSecret(context.Background(), "my-vault", "db-password")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrSecretNotFound)
}

func TestNewKeyVaultCredentialError(t *testing.T) {
	original := newManagedIdentityCredential
	t.Cleanup(func() { newManagedIdentityCredential = original })
	boom := errors.New("bad client id")
	newManagedIdentityCredential = func(string) (azcore.TokenCredential, error) { return nil, boom }

	_, err := NewKeyVault("x")
	assert.ErrorIs(t, err, boom)
}

func TestVaultURL(t *testing.T) {
	assert.Equal(t, "https://kv-prod.vault.azure.net", VaultURL("kv-prod"))
}

type fakeSecretsManager struct {
	input *secretsmanager.GetSecretValueInput
	out   *secretsmanager.GetSecretValueOutput
	err   error
}

func (f *fakeSecretsManager) GetSecretValue(_ context.Context, input *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.input = input
	return f.out, f.err
}

func TestSecretsManagerGetSecret(t *testing.T) {
	client := &fakeSecretsManager{out: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("hunter2")}}
	value, err := NewSecretsManager(client).GetSecret(context.Background(), "ignored", "prod/db")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)
	assert.Equal(t, "prod/db", aws.ToString(client.input.SecretId))

	client.out = &secretsmanager.GetSecretValueOutput{SecretBinary: []byte("binary")}
	value, err = NewSecretsManager(client).GetSecret(context.Background(), "", "prod/db")
	require.NoError(t, err)
	assert.Equal(t, "binary", value)

	client.out = &secretsmanager.GetSecretValueOutput{}
	_, err = NewSecretsManager(client).GetSecret(context.Background(), "", "prod/db")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestSecretsManagerErrors(t *testing.T) {
	client := &fakeSecretsManager{err: &smtypes.ResourceNotFoundException{Message: aws.String("gone")}}
	_, err := NewSecretsManager(client).GetSecret(context.Background(), "", "prod/db")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	boom := errors.New("access denied")
	client.err = boom
	_, err = NewSecretsManager(client).GetSecret(context.Background(), "", "prod/db")
	assert.ErrorIs(t, err, boom)
}

type fakeS3 struct {
	input *s3.GetObjectInput
	body  string
	err   error
}

func (f *fakeS3) GetObject(_ context.Context, input *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestS3GetSecret(t *testing.T) {
	client := &fakeS3{body: "hunter2\n"}
	value, err := NewS3(client).GetSecret(context.Background(), "secrets-bucket", "db/password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2\n", value)
	assert.Equal(t, "secrets-bucket", aws.ToString(client.input.Bucket))
	assert.Equal(t, "db/password", aws.ToString(client.input.Key))
}

func TestS3Errors(t *testing.T) {
	client := &fakeS3{err: &s3types.NoSuchKey{}}
	_, err := NewS3(client).GetSecret(context.Background(), "bucket", "missing")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	client.err = &s3types.NoSuchBucket{}
	_, err = NewS3(client).GetSecret(context.Background(), "bucket", "missing")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	_, err = NewS3(client).GetSecret(context.Background(), "", "name")
	assert.Error(t, err)
}

type fakeDynamo struct {
	input *dynamodb.GetItemInput
	item  map[string]types.AttributeValue
	err   error
}

func (f *fakeDynamo) GetItem(_ context.Context, input *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.item}, nil
}

func TestDynamoDBGetSecret(t *testing.T) {
	client := &fakeDynamo{item: map[string]types.AttributeValue{
		"secret": &types.AttributeValueMemberS{Value: "hunter2"},
	}}
	value, err := NewDynamoDB(client, "id", "secret").GetSecret(context.Background(), "secrets", "db-password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)

	assert.Equal(t, "secrets", aws.ToString(client.input.TableName))
	key, ok := client.input.Key["id"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "db-password", key.Value)
	assert.Equal(t, "secret", client.input.ExpressionAttributeNames["#v"])
	assert.True(t, aws.ToBool(client.input.ConsistentRead))
}

func TestDynamoDBDefaultsAndErrors(t *testing.T) {
	store := NewDynamoDB(&fakeDynamo{}, "", "")
	assert.Equal(t, "name", store.keyAttr)
	assert.Equal(t, "value", store.valueAttr)

	_, err := store.GetSecret(context.Background(), "secrets", "missing")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	numeric := NewDynamoDB(&fakeDynamo{item: map[string]types.AttributeValue{
		"value": &types.AttributeValueMemberN{Value: "42"},
	}}, "", "")
	_, err = numeric.GetSecret(context.Background(), "secrets", "answer")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSecretNotFound)

	noValue := NewDynamoDB(&fakeDynamo{item: map[string]types.AttributeValue{
		"name": &types.AttributeValueMemberS{Value: "answer"},
	}}, "", "")
	_, err = noValue.GetSecret(context.Background(), "secrets", "answer")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	_, err = store.GetSecret(context.Background(), "", "answer")
	assert.Error(t, err)

	boom := errors.New("throttled")
	_, err = NewDynamoDB(&fakeDynamo{err: boom}, "", "").GetSecret(context.Background(), "secrets", "x")
	assert.ErrorIs(t, err, boom)
}

func TestFileGetSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"db-password": "hunter2"}`), 0o600))

	store := NewFile(path)
	value, err := store.GetSecret(context.Background(), "", "db-password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)

	_, err = store.GetSecret(context.Background(), "", "missing")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	require.NoError(t, os.WriteFile(path, []byte(`{"db-password": "rotated"}`), 0o600))
	value, err = store.GetSecret(context.Background(), "", "db-password")
	require.NoError(t, err)
	assert.Equal(t, "rotated", value, "file is re-read on each call")
}

func TestFileErrors(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "missing.json")).GetSecret(context.Background(), "", "x")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`["not", "an", "object"]`), 0o600))
	_, err = NewFile(path).GetSecret(context.Background(), "", "x")
	assert.Error(t, err)

	_, err = NewFile("").GetSecret(context.Background(), "", "x")
	assert.Error(t, err)
}

func TestEnvGetSecret(t *testing.T) {
	env := map[string]string{"APP_SECRET_DB_PASSWORD": "hunter2", "APP_SECRET_EMPTY": ""}
	store := NewEnv("APP_SECRET_", func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	})

	value, err := store.GetSecret(context.Background(), "", "db-password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)

	value, err = store.GetSecret(context.Background(), "", "empty")
	require.NoError(t, err)
	assert.Equal(t, "", value)

	_, err = store.GetSecret(context.Background(), "", "other")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	assert.Equal(t, "APP_SECRET_A_B_C9", store.Key("a.b/c9"))
}

func TestEnvDefaultsToProcessEnv(t *testing.T) {
	t.Setenv("INFOPAGE_TEST_SECRET_TOKEN", "abc")
	value, err := NewEnv("INFOPAGE_TEST_SECRET_", nil).GetSecret(context.Background(), "", "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", value)
}
