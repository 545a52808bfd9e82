// Where: internal/infra/secrets/s3.go
// What: S3 backend; the object body is the secret.
// Why: Reuse an existing bucket as a minimal secret store.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3Client is the subset of *s3.Client used here.
type s3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 reads s3://<vault>/<name>.
type S3 struct {
	client s3Client
}

// NewS3 wraps an S3 client.
func NewS3(client s3Client) *S3 {
	return &S3{client: client}
}

// GetSecret returns the object body unmodified.
func (s *S3) GetSecret(ctx context.Context, vault, name string) (string, error) {
	bucket := strings.TrimSpace(vault)
	if bucket == "" {
		return "", fmt.Errorf("bucket name is required")
	}
	if err := requireName(name); err != nil {
		return "", err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		var noBucket *s3types.NoSuchBucket
		if errors.As(err, &noKey) || errors.As(err, &noBucket) {
			return "", notFound(bucket, name)
		}
		return "", fmt.Errorf("get object s3://%s/%s: %w", bucket, name, err)
	}
	defer func() { _ = out.Body.Close() }()

	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("read object s3://%s/%s: %w", bucket, name, err)
	}
	return string(payload), nil
}
