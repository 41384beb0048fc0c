// Package dynamo holds the DynamoDB plumbing shared by the entity
// repositories: record encoding, key shapes, update expressions and index
// queries.
package dynamo

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Encode converts a record into its attribute map. NULL map members are
// dropped at every depth: an absent Go value must reach DynamoDB as a missing
// attribute, since index key attributes reject NULL. List elements keep their
// positions, NULL included.
func Encode(record any) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("marshal item: %w", err)
	}
	return stripNullMap(item), nil
}

// EncodeValue converts a single value for use in an expression. A value that
// encodes to nothing or to NULL is an error; absent attributes are removed,
// not set.
func EncodeValue(v any) (types.AttributeValue, error) {
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	switch av.(type) {
	case nil:
		return nil, fmt.Errorf("marshal value: unsupported type %T", v)
	case *types.AttributeValueMemberNULL:
		return nil, fmt.Errorf("marshal value: %T encodes to NULL", v)
	}
	if m, ok := av.(*types.AttributeValueMemberM); ok {
		return &types.AttributeValueMemberM{Value: stripNullMap(m.Value)}, nil
	}
	return av, nil
}

// Decode converts an attribute map into out, which must be a pointer.
func Decode(item map[string]types.AttributeValue, out any) error {
	if err := attributevalue.UnmarshalMap(item, out); err != nil {
		return fmt.Errorf("unmarshal item: %w", err)
	}
	return nil
}

// DecodeAll converts a list of attribute maps into out, a pointer to a slice.
func DecodeAll(items []map[string]types.AttributeValue, out any) error {
	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("unmarshal items: %w", err)
	}
	return nil
}

func stripNullMap(m map[string]types.AttributeValue) map[string]types.AttributeValue {
	for k, v := range m {
		cleaned, keep := stripNull(v)
		if !keep {
			delete(m, k)
			continue
		}
		m[k] = cleaned
	}
	return m
}

func stripNull(v types.AttributeValue) (types.AttributeValue, bool) {
	switch t := v.(type) {
	case nil, *types.AttributeValueMemberNULL:
		return nil, false
	case *types.AttributeValueMemberM:
		return &types.AttributeValueMemberM{Value: stripNullMap(t.Value)}, true
	case *types.AttributeValueMemberL:
		out := make([]types.AttributeValue, len(t.Value))
		for i, e := range t.Value {
			if cleaned, keep := stripNull(e); keep {
				out[i] = cleaned
				continue
			}
			out[i] = e
		}
		return &types.AttributeValueMemberL{Value: out}, true
	}
	return v, true
}
