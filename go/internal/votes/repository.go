package votes

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcastro/voteboard/go/internal/dynamoutil"
	"github.com/mcastro/voteboard/go/internal/models"
)

// Key layout for the votes table. One partition per (judge, team) pair holds
// every vote item plus a single marker item carrying the submission metadata.
const (
	voteSortPrefix = "CRIT#"
	markerSortKey  = "SUBMISSION"

	teamIndex      = "team-index"
	criterionIndex = "criterion-index"
	judgeIndex     = "judge-index"
)

// dbVote is the DynamoDB representation of one vote
type dbVote struct {
	SubmissionKey string    `dynamodbav:"submission_key"`
	SortKey       string    `dynamodbav:"sort_key"`
	JudgeID       string    `dynamodbav:"judge_id"`
	TeamID        string    `dynamodbav:"team_id"`
	CriterionID   string    `dynamodbav:"criterion_id"`
	Value         bool      `dynamodbav:"value"`
	Comment       string    `dynamodbav:"comment,omitempty"`
	CreatedAt     time.Time `dynamodbav:"created_at"`
}

// dbMarker is the per-pair submission marker. Its version attribute is the
// target of the conditional write that makes a replace atomic.
type dbMarker struct {
	SubmissionKey string    `dynamodbav:"submission_key"`
	SortKey       string    `dynamodbav:"sort_key"`
	JudgeID       string    `dynamodbav:"judge_id"`
	TeamID        string    `dynamodbav:"team_id"`
	Version       int64     `dynamodbav:"version"`
	VoteCount     int       `dynamodbav:"vote_count"`
	SubmittedAt   time.Time `dynamodbav:"submitted_at"`
}

// Repository implements vote ledger data access against the votes table
type Repository struct {
	client *dynamodb.Client
	table  string
	clock  clockwork.Clock
}

// NewRepository creates a new votes repository
func NewRepository(client *dynamodb.Client, table string, clock clockwork.Clock) *Repository {
	return &Repository{
		client: client,
		table:  table,
		clock:  clock,
	}
}

func submissionKey(judgeID, teamID uuid.UUID) string {
	return judgeID.String() + "#" + teamID.String()
}

func voteSortKey(criterionID uuid.UUID) string {
	return voteSortPrefix + criterionID.String()
}

// GetSubmission loads the stored state for a (judge, team) pair. Returns nil
// when the pair has never been written.
func (r *Repository) GetSubmission(ctx context.Context, judgeID, teamID uuid.UUID) (*Submission, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              &r.table,
		KeyConditionExpression: aws.String("submission_key = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: submissionKey(judgeID, teamID)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query submission: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	sub := &Submission{JudgeID: judgeID, TeamID: teamID}
	for _, item := range out.Items {
		sortKey, ok := item["sort_key"].(*types.AttributeValueMemberS)
		if !ok {
			continue
		}
		if sortKey.Value == markerSortKey {
			var marker dbMarker
			if err := attributevalue.UnmarshalMap(item, &marker); err != nil {
				return nil, fmt.Errorf("failed to unmarshal submission marker: %w", err)
			}
			sub.Version = marker.Version
			sub.SubmittedAt = marker.SubmittedAt
			continue
		}

		vote, err := unmarshalVote(item)
		if err != nil {
			return nil, err
		}
		sub.Votes = append(sub.Votes, *vote)
	}
	return sub, nil
}

// ReplaceSubmission writes the new batch for a (judge, team) pair as a single
// transaction: the marker put carries the condition (absent on first write,
// version match on overwrite), every entry is upserted, and prior votes for
// criteria missing from the new batch are deleted. Returns ErrVersionConflict
// when a concurrent submission wins the condition.
func (r *Repository) ReplaceSubmission(ctx context.Context, judgeID, teamID uuid.UUID, entries []VoteEntry, prior *Submission) (*Submission, error) {
	now := r.clock.Now().UTC()
	pk := submissionKey(judgeID, teamID)

	marker := dbMarker{
		SubmissionKey: pk,
		SortKey:       markerSortKey,
		JudgeID:       judgeID.String(),
		TeamID:        teamID.String(),
		Version:       1,
		VoteCount:     len(entries),
		SubmittedAt:   now,
	}
	condition := "attribute_not_exists(submission_key)"
	var conditionValues map[string]types.AttributeValue
	if prior != nil {
		marker.Version = prior.Version + 1
		condition = "version = :expected"
		conditionValues = map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(prior.Version, 10)},
		}
	}

	markerItem, err := attributevalue.MarshalMap(marker)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission marker: %w", err)
	}

	writes := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:                 &r.table,
			Item:                      markerItem,
			ConditionExpression:       aws.String(condition),
			ExpressionAttributeValues: conditionValues,
		},
	}}

	newVotes := make([]models.Vote, 0, len(entries))
	newSortKeys := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		vote := dbVote{
			SubmissionKey: pk,
			SortKey:       voteSortKey(entry.CriterionID),
			JudgeID:       judgeID.String(),
			TeamID:        teamID.String(),
			CriterionID:   entry.CriterionID.String(),
			Value:         entry.Value,
			Comment:       entry.Comment,
			CreatedAt:     now,
		}
		item, err := attributevalue.MarshalMap(vote)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal vote: %w", err)
		}
		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{TableName: &r.table, Item: item},
		})
		newSortKeys[vote.SortKey] = struct{}{}
		newVotes = append(newVotes, models.Vote{
			JudgeID:     judgeID,
			TeamID:      teamID,
			CriterionID: entry.CriterionID,
			Value:       entry.Value,
			Comment:     entry.Comment,
			CreatedAt:   now,
		})
	}

	// A transaction cannot put and delete the same key, so only votes whose
	// criterion is absent from the new batch get an explicit delete.
	if prior != nil {
		for _, old := range prior.Votes {
			staleKey := voteSortKey(old.CriterionID)
			if _, kept := newSortKeys[staleKey]; kept {
				continue
			}
			writes = append(writes, types.TransactWriteItem{
				Delete: &types.Delete{
					TableName: &r.table,
					Key: map[string]types.AttributeValue{
						"submission_key": &types.AttributeValueMemberS{Value: pk},
						"sort_key":       &types.AttributeValueMemberS{Value: staleKey},
					},
				},
			})
		}
	}

	if _, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	}); err != nil {
		if dynamoutil.IsConditionalCheckFailed(err) {
			return nil, ErrVersionConflict
		}
		return nil, fmt.Errorf("failed to replace submission: %w", err)
	}

	return &Submission{
		JudgeID:     judgeID,
		TeamID:      teamID,
		Votes:       newVotes,
		Version:     marker.Version,
		SubmittedAt: now,
	}, nil
}

// QueryVotesByTeam returns every live vote cast for a team
func (r *Repository) QueryVotesByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Vote, error) {
	return r.queryVotesByIndex(ctx, teamIndex, "team_id", teamID)
}

// QueryVotesByJudge returns every live vote cast by a judge
func (r *Repository) QueryVotesByJudge(ctx context.Context, judgeID uuid.UUID) ([]models.Vote, error) {
	return r.queryVotesByIndex(ctx, judgeIndex, "judge_id", judgeID)
}

func (r *Repository) queryVotesByIndex(ctx context.Context, index, attribute string, id uuid.UUID) ([]models.Vote, error) {
	items, err := r.queryIndexItems(ctx, index, attribute, id)
	if err != nil {
		return nil, err
	}

	votes := make([]models.Vote, 0, len(items))
	for _, item := range items {
		if isMarkerItem(item) {
			continue
		}
		vote, err := unmarshalVote(item)
		if err != nil {
			return nil, err
		}
		votes = append(votes, *vote)
	}
	return votes, nil
}

// ListVotes returns every live vote in the ledger
func (r *Repository) ListVotes(ctx context.Context) ([]models.Vote, error) {
	items, err := dynamoutil.ScanAll(ctx, r.client, r.table)
	if err != nil {
		return nil, fmt.Errorf("failed to scan votes: %w", err)
	}

	votes := make([]models.Vote, 0, len(items))
	for _, item := range items {
		if isMarkerItem(item) {
			continue
		}
		vote, err := unmarshalVote(item)
		if err != nil {
			return nil, err
		}
		votes = append(votes, *vote)
	}
	return votes, nil
}

// DeleteVotesByCriterion removes every vote recorded under a criterion.
// Submission markers survive so overwrite versioning stays intact.
func (r *Repository) DeleteVotesByCriterion(ctx context.Context, criterionID uuid.UUID) (int, error) {
	items, err := r.queryIndexItems(ctx, criterionIndex, "criterion_id", criterionID)
	if err != nil {
		return 0, err
	}
	return r.deleteItems(ctx, items)
}

// DeleteVotesByTeam removes every vote for a team, markers included
func (r *Repository) DeleteVotesByTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	items, err := r.queryIndexItems(ctx, teamIndex, "team_id", teamID)
	if err != nil {
		return 0, err
	}
	return r.deleteItems(ctx, items)
}

// DeleteVotesByJudge removes every vote cast by a judge, markers included
func (r *Repository) DeleteVotesByJudge(ctx context.Context, judgeID uuid.UUID) (int, error) {
	items, err := r.queryIndexItems(ctx, judgeIndex, "judge_id", judgeID)
	if err != nil {
		return 0, err
	}
	return r.deleteItems(ctx, items)
}

// DeleteAllVotes empties the ledger. Used by the admin reset path.
func (r *Repository) DeleteAllVotes(ctx context.Context) (int, error) {
	items, err := dynamoutil.ScanAll(ctx, r.client, r.table)
	if err != nil {
		return 0, fmt.Errorf("failed to scan votes: %w", err)
	}
	return r.deleteItems(ctx, items)
}

func (r *Repository) queryIndexItems(ctx context.Context, index, attribute string, id uuid.UUID) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              &r.table,
			IndexName:              aws.String(index),
			KeyConditionExpression: aws.String(attribute + " = :id"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":id": &types.AttributeValueMemberS{Value: id.String()},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", index, err)
		}
		items = append(items, out.Items...)
		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// deleteItems batch-deletes the given items and returns how many of them were
// votes rather than markers.
func (r *Repository) deleteItems(ctx context.Context, items []map[string]types.AttributeValue) (int, error) {
	voteCount := 0
	keys := make([]map[string]types.AttributeValue, 0, len(items))
	for _, item := range items {
		if !isMarkerItem(item) {
			voteCount++
		}
		keys = append(keys, map[string]types.AttributeValue{
			"submission_key": item["submission_key"],
			"sort_key":       item["sort_key"],
		})
	}

	if _, err := dynamoutil.BatchDelete(ctx, r.client, r.table, keys); err != nil {
		return 0, err
	}
	return voteCount, nil
}

func isMarkerItem(item map[string]types.AttributeValue) bool {
	sortKey, ok := item["sort_key"].(*types.AttributeValueMemberS)
	return ok && !strings.HasPrefix(sortKey.Value, voteSortPrefix)
}

func unmarshalVote(item map[string]types.AttributeValue) (*models.Vote, error) {
	var vote dbVote
	if err := attributevalue.UnmarshalMap(item, &vote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vote: %w", err)
	}

	judgeID, err := uuid.Parse(vote.JudgeID)
	if err != nil {
		return nil, fmt.Errorf("invalid judge id %q: %w", vote.JudgeID, err)
	}
	teamID, err := uuid.Parse(vote.TeamID)
	if err != nil {
		return nil, fmt.Errorf("invalid team id %q: %w", vote.TeamID, err)
	}
	criterionID, err := uuid.Parse(vote.CriterionID)
	if err != nil {
		return nil, fmt.Errorf("invalid criterion id %q: %w", vote.CriterionID, err)
	}

	return &models.Vote{
		JudgeID:     judgeID,
		TeamID:      teamID,
		CriterionID: criterionID,
		Value:       vote.Value,
		Comment:     vote.Comment,
		CreatedAt:   vote.CreatedAt,
	}, nil
}
