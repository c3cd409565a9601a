package judges

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

// dbJudge is the DynamoDB representation of a judge
type dbJudge struct {
	ID        string    `dynamodbav:"id"`
	Name      string    `dynamodbav:"name"`
	Email     string    `dynamodbav:"email"`
	Role      string    `dynamodbav:"role,omitempty"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

// Repository implements judge data access against the judges table
type Repository struct {
	client *dynamodb.Client
	table  string
	clock  clockwork.Clock
}

// NewRepository creates a new judges repository
func NewRepository(client *dynamodb.Client, table string, clock clockwork.Clock) *Repository {
	return &Repository{
		client: client,
		table:  table,
		clock:  clock,
	}
}

// CreateJudge persists a new judge with a generated id
func (r *Repository) CreateJudge(ctx context.Context, req CreateJudgeRequest) (*models.Judge, error) {
	judge := dbJudge{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		CreatedAt: r.clock.Now().UTC(),
	}

	item, err := attributevalue.MarshalMap(judge)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal judge: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to create judge: %w", err)
	}

	return r.dbJudgeToModel(judge)
}

// GetJudge retrieves a judge by ID
func (r *Repository) GetJudge(ctx context.Context, id uuid.UUID) (*models.Judge, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get judge: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var judge dbJudge
	if err := attributevalue.UnmarshalMap(out.Item, &judge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal judge: %w", err)
	}
	return r.dbJudgeToModel(judge)
}

// ListJudges retrieves all judges
func (r *Repository) ListJudges(ctx context.Context) ([]models.Judge, error) {
	items, err := dynamoutil.ScanAll(ctx, r.client, r.table)
	if err != nil {
		return nil, fmt.Errorf("failed to list judges: %w", err)
	}

	judges := make([]models.Judge, 0, len(items))
	for _, item := range items {
		var judge dbJudge
		if err := attributevalue.UnmarshalMap(item, &judge); err != nil {
			return nil, fmt.Errorf("failed to unmarshal judge: %w", err)
		}
		model, err := r.dbJudgeToModel(judge)
		if err != nil {
			return nil, err
		}
		judges = append(judges, *model)
	}
	return judges, nil
}

// UpdateJudge applies the given changes and replaces the stored judge
func (r *Repository) UpdateJudge(ctx context.Context, id uuid.UUID, req UpdateJudgeRequest) (*models.Judge, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get judge: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var judge dbJudge
	if err := attributevalue.UnmarshalMap(out.Item, &judge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal judge: %w", err)
	}

	if req.Name != nil {
		judge.Name = *req.Name
	}
	if req.Email != nil {
		judge.Email = *req.Email
	}
	if req.Role != nil {
		judge.Role = *req.Role
	}

	item, err := attributevalue.MarshalMap(judge)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal judge: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to update judge: %w", err)
	}

	return r.dbJudgeToModel(judge)
}

// DeleteJudge deletes a judge by ID
func (r *Repository) DeleteJudge(ctx context.Context, id uuid.UUID) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.table,
		Key:       idKey(id),
	}); err != nil {
		return fmt.Errorf("failed to delete judge: %w", err)
	}
	return nil
}

// DeleteAllJudges removes every judge. Used by the admin reset path.
func (r *Repository) DeleteAllJudges(ctx context.Context) (int, error) {
	items, err := dynamoutil.ScanAll(ctx, r.client, r.table)
	if err != nil {
		return 0, fmt.Errorf("failed to scan judges: %w", err)
	}

	keys := make([]map[string]types.AttributeValue, 0, len(items))
	for _, item := range items {
		keys = append(keys, map[string]types.AttributeValue{"id": item["id"]})
	}
	return dynamoutil.BatchDelete(ctx, r.client, r.table, keys)
}

// dbJudgeToModel converts a stored judge to the domain model
func (r *Repository) dbJudgeToModel(judge dbJudge) (*models.Judge, error) {
	id, err := uuid.Parse(judge.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid judge id %q: %w", judge.ID, err)
	}
	return &models.Judge{
		ID:        id,
		Name:      judge.Name,
		Email:     judge.Email,
		Role:      judge.Role,
		CreatedAt: judge.CreatedAt,
	}, nil
}

func idKey(id uuid.UUID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id.String()},
	}
}
