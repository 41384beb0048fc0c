package dynamo

import (
	"sort"
	"strings"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Update accumulates a partial modification of one item. Attribute names are
// always referenced through "#name" placeholders, so reserved words such as
// status, name and type are safe to set.
type Update struct {
	sets      []string
	removes   []string
	condition string
	names     map[string]string
	values    map[string]types.AttributeValue
	err       error
}

// NewUpdate returns an empty Update.
func NewUpdate() *Update {
	return &Update{
		names:  map[string]string{},
		values: map[string]types.AttributeValue{},
	}
}

// Set assigns v to attr.
func (u *Update) Set(attr string, v any) *Update {
	av, err := EncodeValue(v)
	if err != nil {
		if u.err == nil {
			u.err = err
		}
		return u
	}
	u.names["#"+attr] = attr
	u.values[":"+attr] = av
	u.sets = append(u.sets, "#"+attr+" = :"+attr)
	return u
}

// Remove deletes attr from the item.
func (u *Update) Remove(attr string) *Update {
	u.names["#"+attr] = attr
	u.removes = append(u.removes, "#"+attr)
	return u
}

// RequireExists makes the write conditional on attr being present, which
// turns an update of a missing item into a ConditionalCheckFailedException
// instead of an upsert.
func (u *Update) RequireExists(attr string) *Update {
	u.names["#"+attr] = attr
	u.condition = "attribute_exists(#" + attr + ")"
	return u
}

// Expression renders the update expression, e.g. "SET #a = :a REMOVE #b".
func (u *Update) Expression() string {
	var b strings.Builder
	if len(u.sets) > 0 {
		b.WriteString("SET ")
		b.WriteString(strings.Join(u.sets, ", "))
	}
	if len(u.removes) > 0 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("REMOVE ")
		b.WriteString(strings.Join(u.removes, ", "))
	}
	return b.String()
}

// Attributes lists the attribute names touched by the update, sorted.
func (u *Update) Attributes() []string {
	out := make([]string, 0, len(u.names))
	for _, attr := range u.names {
		out = append(out, attr)
	}
	sort.Strings(out)
	return out
}

// Input builds an UpdateItemInput returning the full updated item.
func (u *Update) Input(table string, key map[string]types.AttributeValue) (*dyn.UpdateItemInput, error) {
	if u.err != nil {
		return nil, u.err
	}
	expr := u.Expression()
	input := &dyn.UpdateItemInput{
		TableName:                &table,
		Key:                      key,
		UpdateExpression:         &expr,
		ExpressionAttributeNames: u.names,
		ReturnValues:             types.ReturnValueAllNew,
	}
	if len(u.values) > 0 {
		input.ExpressionAttributeValues = u.values
	}
	if u.condition != "" {
		cond := u.condition
		input.ConditionExpression = &cond
	}
	return input, nil
}
