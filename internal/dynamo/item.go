package dynamo

import (
	"context"
	"fmt"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/imrishuroy/stripe-graphql-api/internal/aws"
)

// Put encodes record and writes it unconditionally.
func Put(ctx context.Context, client aws.DynamoDBAPI, table string, record any) error {
	item, err := Encode(record)
	if err != nil {
		return err
	}
	if _, err := client.PutItem(ctx, &dyn.PutItemInput{TableName: &table, Item: item}); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Get reads the item under key into out. It reports false, and leaves out
// untouched, when there is no such item.
func Get(ctx context.Context, client aws.DynamoDBAPI, table string, key map[string]types.AttributeValue, out any) (bool, error) {
	res, err := client.GetItem(ctx, &dyn.GetItemInput{TableName: &table, Key: key})
	if err != nil {
		return false, fmt.Errorf("get item: %w", err)
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	if err := Decode(res.Item, out); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the item under key.
func Delete(ctx context.Context, client aws.DynamoDBAPI, table string, key map[string]types.AttributeValue) error {
	if _, err := client.DeleteItem(ctx, &dyn.DeleteItemInput{TableName: &table, Key: key}); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Apply runs u against the item under key and decodes the updated item into
// out. It reports false when the item does not exist: either u's existence
// condition failed or no attributes came back.
func Apply(ctx context.Context, client aws.DynamoDBAPI, table string, key map[string]types.AttributeValue, u *Update, out any) (bool, error) {
	input, err := u.Input(table, key)
	if err != nil {
		return false, err
	}
	res, err := client.UpdateItem(ctx, input)
	if err != nil {
		if IsConditionFailed(err) {
			return false, nil
		}
		return false, fmt.Errorf("update item: %w", err)
	}
	if len(res.Attributes) == 0 {
		return false, nil
	}
	if err := Decode(res.Attributes, out); err != nil {
		return false, err
	}
	return true, nil
}
