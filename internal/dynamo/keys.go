package dynamo

import "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

// Sort key of the single item that carries an entity's attributes.
const MetadataSK = "METADATA"

// Key attribute names.
const (
	AttrID = "id"
	AttrPK = "PK"
	AttrSK = "SK"
)

// PartitionKey returns "<prefix>#<id>".
func PartitionKey(prefix, id string) string {
	return prefix + "#" + id
}

// EntityKey returns the composite key of an entity stored under a prefixed
// partition, e.g. PK=ORDER#42, SK=METADATA.
func EntityKey(prefix, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: PartitionKey(prefix, id)},
		AttrSK: &types.AttributeValueMemberS{Value: MetadataSK},
	}
}

// IDKey returns the single-attribute key {id: <id>}.
func IDKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrID: &types.AttributeValueMemberS{Value: id},
	}
}
