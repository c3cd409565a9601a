package teams

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

// dbTeam is the DynamoDB representation of a team
type dbTeam struct {
	ID               string    `dynamodbav:"id"`
	Name             string    `dynamodbav:"name"`
	ProblemStatement string    `dynamodbav:"problem_statement,omitempty"`
	SuccessCriteria  string    `dynamodbav:"success_criteria,omitempty"`
	Description      string    `dynamodbav:"description,omitempty"`
	CreatedAt        time.Time `dynamodbav:"created_at"`
}

// Repository implements team data access against the teams table
type Repository struct {
	client *dynamodb.Client
	table  string
	clock  clockwork.Clock
}

// NewRepository creates a new teams repository
func NewRepository(client *dynamodb.Client, table string, clock clockwork.Clock) *Repository {
	return &Repository{
		client: client,
		table:  table,
		clock:  clock,
	}
}

// CreateTeam persists a new team with a generated id
func (r *Repository) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	team := dbTeam{
		ID:               uuid.New().String(),
		Name:             req.Name,
		ProblemStatement: req.ProblemStatement,
		SuccessCriteria:  req.SuccessCriteria,
		Description:      req.Description,
		CreatedAt:        r.clock.Now().UTC(),
	}

	item, err := attributevalue.MarshalMap(team)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal team: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return r.dbTeamToModel(team)
}

// GetTeam retrieves a team by ID
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var team dbTeam
	if err := attributevalue.UnmarshalMap(out.Item, &team); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team: %w", err)
	}
	return r.dbTeamToModel(team)
}

// ListTeams retrieves all teams
func (r *Repository) ListTeams(ctx context.Context) ([]models.Team, error) {
	items, err := dynamoutil.ScanAll(ctx, r.client, r.table)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	teams := make([]models.Team, 0, len(items))
	for _, item := range items {
		var team dbTeam
		if err := attributevalue.UnmarshalMap(item, &team); err != nil {
			return nil, fmt.Errorf("failed to unmarshal team: %w", err)
		}
		model, err := r.dbTeamToModel(team)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *model)
	}
	return teams, nil
}

// UpdateTeam applies the given changes and replaces the stored team
func (r *Repository) UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var team dbTeam
	if err := attributevalue.UnmarshalMap(out.Item, &team); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team: %w", err)
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.ProblemStatement != nil {
		team.ProblemStatement = *req.ProblemStatement
	}
	if req.SuccessCriteria != nil {
		team.SuccessCriteria = *req.SuccessCriteria
	}
	if req.Description != nil {
		team.Description = *req.Description
	}

	item, err := attributevalue.MarshalMap(team)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal team: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return r.dbTeamToModel(team)
}

// DeleteTeam deletes a team by ID
func (r *Repository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.table,
		Key:       idKey(id),
	}); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

// DeleteAllTeams removes every team. Used by the admin reset path.
func (r *Repository) DeleteAllTeams(ctx context.Context) (int, error) {
	items, err := dynamoutil.ScanAll(ctx, r.client, r.table)
	if err != nil {
		return 0, fmt.Errorf("failed to scan teams: %w", err)
	}

	keys := make([]map[string]types.AttributeValue, 0, len(items))
	for _, item := range items {
		keys = append(keys, map[string]types.AttributeValue{"id": item["id"]})
	}
	return dynamoutil.BatchDelete(ctx, r.client, r.table, keys)
}

// dbTeamToModel converts a stored team to the domain model
func (r *Repository) dbTeamToModel(team dbTeam) (*models.Team, error) {
	id, err := uuid.Parse(team.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid team id %q: %w", team.ID, err)
	}
	return &models.Team{
		ID:               id,
		Name:             team.Name,
		ProblemStatement: team.ProblemStatement,
		SuccessCriteria:  team.SuccessCriteria,
		Description:      team.Description,
		CreatedAt:        team.CreatedAt,
	}, nil
}

func idKey(id uuid.UUID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id.String()},
	}
}
