// Where: internal/infra/secrets/dynamodb.go
// What: DynamoDB backend; one item per secret.
// Why: Reuse an existing table keyed by secret name.
package secrets

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// dynamoDBClient is the subset of *dynamodb.Client used here.
type dynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// DynamoDB reads the string attribute valueAttr from the item whose string
// hash key keyAttr equals the secret name, in table <vault>.
type DynamoDB struct {
	client    dynamoDBClient
	keyAttr   string
	valueAttr string
}

// NewDynamoDB wraps a DynamoDB client. Empty attribute names default to
// "name" and "value".
func NewDynamoDB(client dynamoDBClient, keyAttr, valueAttr string) *DynamoDB {
	if strings.TrimSpace(keyAttr) == "" {
		keyAttr = "name"
	}
	if strings.TrimSpace(valueAttr) == "" {
		valueAttr = "value"
	}
	return &DynamoDB{client: client, keyAttr: keyAttr, valueAttr: valueAttr}
}

// GetSecret performs a consistent GetItem for name.
func (d *DynamoDB) GetSecret(ctx context.Context, vault, name string) (string, error) {
	table := strings.TrimSpace(vault)
	if table == "" {
		return "", fmt.Errorf("table name is required")
	}
	if err := requireName(name); err != nil {
		return "", err
	}
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			d.keyAttr: &types.AttributeValueMemberS{Value: name},
		},
		ProjectionExpression:     aws.String("#v"),
		ExpressionAttributeNames: map[string]string{"#v": d.valueAttr},
		ConsistentRead:           aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get item %s from table %s: %w", name, table, err)
	}
	if len(out.Item) == 0 {
		return "", notFound(table, name)
	}
	switch value := out.Item[d.valueAttr].(type) {
	case *types.AttributeValueMemberS:
		return value.Value, nil
	case *types.AttributeValueMemberB:
		return string(value.Value), nil
	case nil:
		return "", notFound(table, name)
	default:
		return "", fmt.Errorf("item %s in table %s: attribute %s is not a string", name, table, d.valueAttr)
	}
}
