package dynamo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/dynamo/dynamotest"
)

type widget struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	Name   string `dynamodbav:"name"`
	Status string `dynamodbav:"status"`
}

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	f := dynamotest.New()
	key := EntityKey("WIDGET", "w1")

	in := widget{PK: PartitionKey("WIDGET", "w1"), SK: MetadataSK, Name: "gear", Status: "new"}
	require.NoError(t, Put(ctx, f, "widgets", in))

	var got widget
	ok, err := Get(ctx, f, "widgets", key, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, got)

	require.NoError(t, Delete(ctx, f, "widgets", key))
	got = widget{}
	ok, err = Get(ctx, f, "widgets", key, &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, widget{}, got)
}

func TestApply_MissingItem(t *testing.T) {
	f := dynamotest.New()
	u := NewUpdate().Set("status", "done").RequireExists(AttrPK)

	var got widget
	ok, err := Apply(context.Background(), f, "widgets", EntityKey("WIDGET", "nope"), u, &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, f.Items("widgets"))
}

func TestApply_UpdatesExisting(t *testing.T) {
	ctx := context.Background()
	f := dynamotest.New()
	require.NoError(t, Put(ctx, f, "widgets", widget{PK: PartitionKey("WIDGET", "w1"), SK: MetadataSK, Name: "gear", Status: "new"}))

	var got widget
	u := NewUpdate().Set("status", "done").RequireExists(AttrPK)
	ok, err := Apply(ctx, f, "widgets", EntityKey("WIDGET", "w1"), u, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "done", got.Status)
	assert.Equal(t, "gear", got.Name)
}

func TestApply_WrapsStoreErrors(t *testing.T) {
	f := dynamotest.New()
	throttled := errors.New("throttled")
	f.Errors["UpdateItem"] = throttled

	var got widget
	_, err := Apply(context.Background(), f, "widgets", EntityKey("WIDGET", "w1"), NewUpdate().Set("name", "x"), &got)
	assert.ErrorIs(t, err, throttled)
	assert.False(t, IsConditionFailed(err))
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(errors.New("plain")))

	f := dynamotest.New()
	_, err := f.PutItem(context.Background(), putWithNullKey())
	require.Error(t, err)
	assert.Equal(t, "ValidationException", ErrorCode(fmt.Errorf("put item: %w", err)))
}

func TestFailure_LogsAndClassifies(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	cause := &types.ProvisionedThroughputExceededException{Message: strPtr("slow down")}

	err := Failure(zap.New(core), "Failed to fetch users", fmt.Errorf("query: %w", cause))
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	assert.ErrorIs(t, err, apperr.ErrUpstream)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Failed to fetch users", entries[0].Message)
	assert.Equal(t, "ProvisionedThroughputExceededException", entries[0].ContextMap()["code"])
}

func putWithNullKey() *dyn.PutItemInput {
	return &dyn.PutItemInput{
		TableName: strPtr("widgets"),
		Item: map[string]types.AttributeValue{
			AttrPK: &types.AttributeValueMemberNULL{Value: true},
			AttrSK: &types.AttributeValueMemberS{Value: MetadataSK},
		},
	}
}

func strPtr(s string) *string { return &s }
