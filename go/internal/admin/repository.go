package admin

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/mcastro/voteboard/go/internal/dynamoutil"
)

// Repository stores operational markers in the settings table
type Repository struct {
	client *dynamodb.Client
	table  string
}

// NewRepository creates a new settings repository
func NewRepository(client *dynamodb.Client, table string) *Repository {
	return &Repository{
		client: client,
		table:  table,
	}
}

// PutSetting writes or replaces one marker
func (r *Repository) PutSetting(ctx context.Context, key, value string) error {
	item, err := attributevalue.MarshalMap(Setting{Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("failed to marshal setting: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	}); err != nil {
		return fmt.Errorf("failed to put setting %s: %w", key, err)
	}
	return nil
}

// ListSettings returns every marker
func (r *Repository) ListSettings(ctx context.Context) ([]Setting, error) {
	items, err := dynamoutil.ScanAll(ctx, r.client, r.table)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	settings := make([]Setting, 0, len(items))
	for _, item := range items {
		var setting Setting
		if err := attributevalue.UnmarshalMap(item, &setting); err != nil {
			return nil, fmt.Errorf("failed to unmarshal setting: %w", err)
		}
		settings = append(settings, setting)
	}
	return settings, nil
}
