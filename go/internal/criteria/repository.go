package criteria

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcastro/voteboard/go/internal/dynamoutil"
	"github.com/mcastro/voteboard/go/internal/models"
)

// dbCriterion is the DynamoDB representation of a judging criterion
type dbCriterion struct {
	ID          string    `dynamodbav:"id"`
	Name        string    `dynamodbav:"name"`
	Weight      int       `dynamodbav:"weight"`
	Description string    `dynamodbav:"description,omitempty"`
	CreatedAt   time.Time `dynamodbav:"created_at"`
}

// Repository implements criterion data access against the criteria table
type Repository struct {
	client *dynamodb.Client
	table  string
	clock  clockwork.Clock
}

// NewRepository creates a new criteria repository
func NewRepository(client *dynamodb.Client, table string, clock clockwork.Clock) *Repository {
	return &Repository{
		client: client,
		table:  table,
		clock:  clock,
	}
}

// CreateCriterion persists a new criterion with a generated id
func (r *Repository) CreateCriterion(ctx context.Context, req CreateCriterionRequest) (*models.Criterion, error) {
	criterion := dbCriterion{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Weight:      req.Weight,
		Description: req.Description,
		CreatedAt:   r.clock.Now().UTC(),
	}

	item, err := attributevalue.MarshalMap(criterion)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal criterion: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to create criterion: %w", err)
	}

	return r.dbCriterionToModel(criterion)
}

// GetCriterion retrieves a criterion by ID
func (r *Repository) GetCriterion(ctx context.Context, id uuid.UUID) (*models.Criterion, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get criterion: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var criterion dbCriterion
	if err := attributevalue.UnmarshalMap(out.Item, &criterion); err != nil {
		return nil, fmt.Errorf("failed to unmarshal criterion: %w", err)
	}
	return r.dbCriterionToModel(criterion)
}

// ListCriteria retrieves all criteria
func (r *Repository) ListCriteria(ctx context.Context) ([]models.Criterion, error) {
	items, err := dynamoutil.ScanAll(ctx, r.client, r.table)
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}

	criteria := make([]models.Criterion, 0, len(items))
	for _, item := range items {
		var criterion dbCriterion
		if err := attributevalue.UnmarshalMap(item, &criterion); err != nil {
			return nil, fmt.Errorf("failed to unmarshal criterion: %w", err)
		}
		model, err := r.dbCriterionToModel(criterion)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, *model)
	}
	return criteria, nil
}

// UpdateCriterion applies the given changes and replaces the stored criterion
func (r *Repository) UpdateCriterion(ctx context.Context, id uuid.UUID, req UpdateCriterionRequest) (*models.Criterion, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get criterion: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var criterion dbCriterion
	if err := attributevalue.UnmarshalMap(out.Item, &criterion); err != nil {
		return nil, fmt.Errorf("failed to unmarshal criterion: %w", err)
	}

	if req.Name != nil {
		criterion.Name = *req.Name
	}
	if req.Weight != nil {
		criterion.Weight = *req.Weight
	}
	if req.Description != nil {
		criterion.Description = *req.Description
	}

	item, err := attributevalue.MarshalMap(criterion)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal criterion: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to update criterion: %w", err)
	}

	return r.dbCriterionToModel(criterion)
}

// DeleteCriterion deletes a criterion by ID
func (r *Repository) DeleteCriterion(ctx context.Context, id uuid.UUID) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.table,
		Key:       idKey(id),
	}); err != nil {
		return fmt.Errorf("failed to delete criterion: %w", err)
	}
	return nil
}

// DeleteAllCriteria removes every criterion. Used by the admin reset path.
func (r *Repository) DeleteAllCriteria(ctx context.Context) (int, error) {
	items, err := dynamoutil.ScanAll(ctx, r.client, r.table)
	if err != nil {
		return 0, fmt.Errorf("failed to scan criteria: %w", err)
	}

	keys := make([]map[string]types.AttributeValue, 0, len(items))
	for _, item := range items {
		keys = append(keys, map[string]types.AttributeValue{"id": item["id"]})
	}
	return dynamoutil.BatchDelete(ctx, r.client, r.table, keys)
}

// dbCriterionToModel converts a stored criterion to the domain model
func (r *Repository) dbCriterionToModel(criterion dbCriterion) (*models.Criterion, error) {
	id, err := uuid.Parse(criterion.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid criterion id %q: %w", criterion.ID, err)
	}
	return &models.Criterion{
		ID:          id,
		Name:        criterion.Name,
		Weight:      criterion.Weight,
		Description: criterion.Description,
		CreatedAt:   criterion.CreatedAt,
	}, nil
}

func idKey(id uuid.UUID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id.String()},
	}
}
