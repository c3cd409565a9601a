package votes

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSubmissionKeyLayout(t *testing.T) {
	judgeID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	teamID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	assert.Equal(t,
		"11111111-1111-1111-1111-111111111111#22222222-2222-2222-2222-222222222222",
		submissionKey(judgeID, teamID))
}

func TestVoteSortKeyLayout(t *testing.T) {
	criterionID := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	assert.Equal(t, "CRIT#33333333-3333-3333-3333-333333333333", voteSortKey(criterionID))
}

func TestIsMarkerItem(t *testing.T) {
	marker := map[string]types.AttributeValue{
		"sort_key": &types.AttributeValueMemberS{Value: markerSortKey},
	}
	vote := map[string]types.AttributeValue{
		"sort_key": &types.AttributeValueMemberS{Value: voteSortKey(uuid.New())},
	}

	assert.True(t, isMarkerItem(marker))
	assert.False(t, isMarkerItem(vote))
}
