// Where: internal/infra/secrets/aws_factory.go
// What: AWS SDK configuration and client constructors for the AWS backends.
// Why: Share region, credential and endpoint handling across Secrets Manager, S3 and DynamoDB.
package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

const defaultAWSRegion = "us-east-1"

// Local emulators accept any key pair.
const emulatorCredential = "dummy"

var loadAWSConfig = func(ctx context.Context, region, endpoint string) (aws.Config, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = defaultAWSRegion
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if strings.TrimSpace(endpoint) != "" && os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		creds := credentials.NewStaticCredentialsProvider(emulatorCredential, emulatorCredential, "")
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

var newSecretsManagerClient = func(cfg aws.Config, endpoint string) secretsManagerClient {
	return secretsmanager.NewFromConfig(cfg, func(options *secretsmanager.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	})
}

var newS3Client = func(cfg aws.Config, endpoint string) s3Client {
	return s3.NewFromConfig(cfg, func(options *s3.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
			options.UsePathStyle = true
		}
	})
}

var newDynamoDBClient = func(cfg aws.Config, endpoint string) dynamoDBClient {
	return dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	})
}
