package dynamoutil

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDB caps BatchWriteItem at 25 requests per call.
const batchWriteLimit = 25

// maxBatchPasses bounds re-submission of unprocessed items so a degraded
// table cannot loop forever.
const maxBatchPasses = 5

// BatchDelete removes the given keys from a table in chunks, re-submitting
// unprocessed items. Returns the number of keys submitted for deletion.
func BatchDelete(ctx context.Context, client *dynamodb.Client, table string, keys []map[string]types.AttributeValue) (int, error) {
	deleted := 0
	for start := 0; start < len(keys); start += batchWriteLimit {
		end := start + batchWriteLimit
		if end > len(keys) {
			end = len(keys)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, key := range keys[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: key},
			})
		}

		pending := map[string][]types.WriteRequest{table: requests}
		for pass := 0; len(pending[table]) > 0; pass++ {
			if pass >= maxBatchPasses {
				return deleted, fmt.Errorf("batch delete left %d unprocessed items after %d passes", len(pending[table]), pass)
			}

			out, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: pending,
			})
			if err != nil {
				return deleted, fmt.Errorf("failed to batch delete from %s: %w", table, err)
			}
			pending = out.UnprocessedItems
		}

		deleted += end - start
	}

	return deleted, nil
}
