package dynamoutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
)

func TestIsConditionalCheckFailedDirect(t *testing.T) {
	err := &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")}

	assert.True(t, IsConditionalCheckFailed(err))
	assert.True(t, IsConditionalCheckFailed(fmt.Errorf("put item: %w", err)))
}

func TestIsConditionalCheckFailedTransactionReason(t *testing.T) {
	err := &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
		},
	}

	assert.True(t, IsConditionalCheckFailed(err))
}

func TestIsConditionalCheckFailedOtherErrors(t *testing.T) {
	assert.False(t, IsConditionalCheckFailed(nil))
	assert.False(t, IsConditionalCheckFailed(errors.New("throughput exceeded")))
	assert.False(t, IsConditionalCheckFailed(&types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{{Code: aws.String("TransactionConflict")}},
	}))
}
