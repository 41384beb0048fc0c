package dynamotest

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsclients "github.com/imrishuroy/stripe-graphql-api/internal/aws"
)

var _ awsclients.DynamoDBAPI = (*Fake)(nil)

func s(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }

func TestFake_PutGetDelete(t *testing.T) {
	f := New()
	ctx := context.Background()

	_, err := f.PutItem(ctx, &dyn.PutItemInput{
		TableName: aws.String("users"),
		Item:      Item{"id": s("u1"), "name": s("Leanne")},
	})
	require.NoError(t, err)

	out, err := f.GetItem(ctx, &dyn.GetItemInput{TableName: aws.String("users"), Key: Item{"id": s("u1")}})
	require.NoError(t, err)
	assert.Equal(t, s("Leanne"), out.Item["name"])

	_, err = f.DeleteItem(ctx, &dyn.DeleteItemInput{TableName: aws.String("users"), Key: Item{"id": s("u1")}})
	require.NoError(t, err)

	out, err = f.GetItem(ctx, &dyn.GetItemInput{TableName: aws.String("users"), Key: Item{"id": s("u1")}})
	require.NoError(t, err)
	assert.Nil(t, out.Item)
	assert.Equal(t, 2, f.Calls["GetItem"])
	assert.Equal(t, 2, f.Mutations())
}

func TestFake_PutRejectsNullKey(t *testing.T) {
	f := New()
	_, err := f.PutItem(context.Background(), &dyn.PutItemInput{
		TableName: aws.String("users"),
		Item:      Item{"id": &types.AttributeValueMemberNULL{Value: true}},
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestFake_UpdateSetRemoveAndCondition(t *testing.T) {
	f := New()
	ctx := context.Background()
	f.Seed("products", Item{"PK": s("PRODUCT#1"), "SK": s("METADATA"), "lowStock": s("true"), "name": s("a")})

	key := Item{"PK": s("PRODUCT#1"), "SK": s("METADATA")}
	out, err := f.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:                 aws.String("products"),
		Key:                       key,
		UpdateExpression:          aws.String("SET #name = :name REMOVE #lowStock"),
		ConditionExpression:       aws.String("attribute_exists(#PK)"),
		ExpressionAttributeNames:  map[string]string{"#name": "name", "#lowStock": "lowStock", "#PK": "PK"},
		ExpressionAttributeValues: Item{":name": s("b")},
		ReturnValues:              types.ReturnValueAllNew,
	})
	require.NoError(t, err)
	assert.Equal(t, s("b"), out.Attributes["name"])
	assert.NotContains(t, out.Attributes, "lowStock")

	_, err = f.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:                 aws.String("products"),
		Key:                       Item{"PK": s("PRODUCT#missing"), "SK": s("METADATA")},
		UpdateExpression:          aws.String("SET #name = :name"),
		ConditionExpression:       aws.String("attribute_exists(#PK)"),
		ExpressionAttributeNames:  map[string]string{"#name": "name", "#PK": "PK"},
		ExpressionAttributeValues: Item{":name": s("b")},
	})
	var ccf *types.ConditionalCheckFailedException
	require.True(t, errors.As(err, &ccf))
	assert.Nil(t, f.Lookup("products", Item{"PK": s("PRODUCT#missing"), "SK": s("METADATA")}))
}

func TestFake_UpdateRejectsReservedWordsAndUnusedNames(t *testing.T) {
	f := New()
	ctx := context.Background()

	_, err := f.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:                 aws.String("orders"),
		Key:                       Item{"id": s("1")},
		UpdateExpression:          aws.String("SET status = :s"),
		ExpressionAttributeValues: Item{":s": s("paid")},
	})
	assert.True(t, IsValidation(err))

	_, err = f.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:                 aws.String("orders"),
		Key:                       Item{"id": s("1")},
		UpdateExpression:          aws.String("SET #s = :s"),
		ExpressionAttributeNames:  map[string]string{"#s": "status", "#x": "unused"},
		ExpressionAttributeValues: Item{":s": s("paid")},
	})
	assert.True(t, IsValidation(err))
}

func TestFake_QueryIsSparseAndPaged(t *testing.T) {
	f := New()
	f.PageSize = 1
	f.Seed("products", Item{"PK": s("PRODUCT#1"), "SK": s("METADATA"), "lowStock": s("true")})
	f.Seed("products", Item{"PK": s("PRODUCT#2"), "SK": s("METADATA")})
	f.Seed("products", Item{"PK": s("PRODUCT#3"), "SK": s("METADATA"), "lowStock": s("true")})

	in := &dyn.QueryInput{
		TableName:                 aws.String("products"),
		IndexName:                 aws.String("LowStockIndex"),
		KeyConditionExpression:    aws.String("#k = :k"),
		ExpressionAttributeNames:  map[string]string{"#k": "lowStock"},
		ExpressionAttributeValues: Item{":k": s("true")},
	}
	first, err := f.Query(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	require.NotEmpty(t, first.LastEvaluatedKey)

	in.ExclusiveStartKey = first.LastEvaluatedKey
	second, err := f.Query(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Empty(t, second.LastEvaluatedKey)
	assert.NotEqual(t, first.Items[0]["PK"], second.Items[0]["PK"])
}

func TestFake_ErrorInjection(t *testing.T) {
	f := New()
	boom := errors.New("boom")
	f.Errors["GetItem"] = boom
	_, err := f.GetItem(context.Background(), &dyn.GetItemInput{TableName: aws.String("t"), Key: Item{"id": s("1")}})
	assert.ErrorIs(t, err, boom)
}
