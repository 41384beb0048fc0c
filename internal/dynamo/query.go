package dynamo

import (
	"context"
	"fmt"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Secondary index names.
const (
	IndexType       = "TypeIndex"
	IndexUserID     = "UserIdIndex"
	IndexCustomerID = "CustomerIdIndex"
	IndexCategory   = "CategoryIndex"
	IndexLowStock   = "LowStockIndex"
	IndexOrderID    = "OrderIdIndex"
	IndexStatus     = "StatusIndex"
)

// QueryIndex returns every item of index whose partition attribute attr
// equals value, following LastEvaluatedKey until the result set is complete.
func QueryIndex(ctx context.Context, client dyn.QueryAPIClient, table, index, attr string, value any) ([]map[string]types.AttributeValue, error) {
	av, err := EncodeValue(value)
	if err != nil {
		return nil, err
	}
	keyCond := "#k = :k"
	input := &dyn.QueryInput{
		TableName:                 &table,
		IndexName:                 &index,
		KeyConditionExpression:    &keyCond,
		ExpressionAttributeNames:  map[string]string{"#k": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":k": av},
	}

	var items []map[string]types.AttributeValue
	p := dyn.NewQueryPaginator(client, input)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", index, err)
		}
		items = append(items, out.Items...)
	}
	return items, nil
}

// List runs QueryIndex and decodes the items into a non-nil slice of T.
func List[T any](ctx context.Context, client dyn.QueryAPIClient, table, index, attr string, value any) ([]T, error) {
	items, err := QueryIndex(ctx, client, table, index, attr, value)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	if len(items) == 0 {
		return out, nil
	}
	if err := DecodeAll(items, &out); err != nil {
		return nil, err
	}
	return out, nil
}
