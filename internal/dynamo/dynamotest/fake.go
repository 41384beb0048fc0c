// Package dynamotest provides an in-memory DynamoDB stand-in for repository
// tests. It understands the subset of the expression language the
// repositories emit: "SET #a = :a, ..." and "REMOVE #b, ..." updates,
// attribute_exists / attribute_not_exists conditions, and single equality key
// conditions on secondary indexes (which are sparse, as in DynamoDB).
package dynamotest

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// Item is a stored attribute map.
type Item = map[string]types.AttributeValue

// reserved is a sample of DynamoDB reserved words the repositories touch.
var reserved = map[string]bool{
	"status": true, "name": true, "type": true, "data": true, "count": true, "value": true,
}

var (
	clauseRe = regexp.MustCompile(`\b(SET|REMOVE)\b`)
	existsRe = regexp.MustCompile(`^attribute_(not_)?exists\s*\(\s*([^)\s]+)\s*\)$`)
	keyRe    = regexp.MustCompile(`^(\S+)\s*=\s*(\S+)$`)
)

// QueryCall records one Query request.
type QueryCall struct {
	Table string
	Index string
	Attr  string
	Value types.AttributeValue
}

// Fake is a concurrency-safe in-memory DynamoDB.
type Fake struct {
	mu     sync.Mutex
	tables map[string]map[string]Item

	// Calls counts requests per operation name ("PutItem", "Query", ...).
	Calls map[string]int
	// Queries records every Query in arrival order.
	Queries []QueryCall
	// Errors forces an operation to fail with the given error.
	Errors map[string]error
	// PageSize splits Query results into pages when positive.
	PageSize int
	// BeforeUpdate runs before an UpdateItem is applied, outside the lock.
	BeforeUpdate func(in *dyn.UpdateItemInput)
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		tables: map[string]map[string]Item{},
		Calls:  map[string]int{},
		Errors: map[string]error{},
	}
}

// Seed stores item directly, bypassing call accounting.
func (f *Fake) Seed(table string, item Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table(table)[keyOf(item)] = clone(item)
}

// Items returns a copy of every item in table.
func (f *Fake) Items(table string) []Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Item, 0, len(f.tables[table]))
	for _, k := range sortedKeys(f.tables[table]) {
		out = append(out, clone(f.tables[table][k]))
	}
	return out
}

// Lookup returns a copy of the item stored under key, or nil.
func (f *Fake) Lookup(table string, key Item) Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.tables[table][keyString(key)]
	if !ok {
		return nil
	}
	return clone(item)
}

// Mutations returns the number of write requests received.
func (f *Fake) Mutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls["PutItem"] + f.Calls["UpdateItem"] + f.Calls["DeleteItem"]
}

func (f *Fake) PutItem(ctx context.Context, in *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("PutItem"); err != nil {
		return nil, err
	}
	if in.Item == nil {
		return nil, validation("item is nil")
	}
	for k, v := range in.Item {
		if _, ok := v.(*types.AttributeValueMemberNULL); ok && isKeyAttr(k) {
			return nil, validation("key attribute " + k + " is NULL")
		}
	}
	tbl := f.table(*in.TableName)
	k := keyOf(in.Item)
	if in.ConditionExpression != nil {
		if err := checkCondition(*in.ConditionExpression, in.ExpressionAttributeNames, tbl[k]); err != nil {
			return nil, err
		}
	}
	tbl[k] = clone(in.Item)
	return &dyn.PutItemOutput{}, nil
}

func (f *Fake) GetItem(ctx context.Context, in *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("GetItem"); err != nil {
		return nil, err
	}
	item, ok := f.table(*in.TableName)[keyString(in.Key)]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: clone(item)}, nil
}

func (f *Fake) DeleteItem(ctx context.Context, in *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeleteItem"); err != nil {
		return nil, err
	}
	tbl := f.table(*in.TableName)
	k := keyString(in.Key)
	old, ok := tbl[k]
	delete(tbl, k)
	out := &dyn.DeleteItemOutput{}
	if ok && in.ReturnValues == types.ReturnValueAllOld {
		out.Attributes = old
	}
	return out, nil
}

func (f *Fake) UpdateItem(ctx context.Context, in *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	if f.BeforeUpdate != nil {
		f.BeforeUpdate(in)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("UpdateItem"); err != nil {
		return nil, err
	}
	if in.UpdateExpression == nil {
		return nil, validation("update expression is required")
	}

	tbl := f.table(*in.TableName)
	k := keyString(in.Key)
	current := tbl[k]

	used := map[string]bool{}
	if in.ConditionExpression != nil {
		collect(*in.ConditionExpression, used)
		if err := checkCondition(*in.ConditionExpression, in.ExpressionAttributeNames, current); err != nil {
			return nil, err
		}
	}
	collect(*in.UpdateExpression, used)
	for name := range in.ExpressionAttributeNames {
		if !used[name] {
			return nil, validation("unused expression attribute name " + name)
		}
	}
	for name := range in.ExpressionAttributeValues {
		if !used[name] {
			return nil, validation("unused expression attribute value " + name)
		}
	}

	next := clone(current)
	if next == nil {
		next = clone(in.Key)
	}
	if err := apply(*in.UpdateExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues, next); err != nil {
		return nil, err
	}
	tbl[k] = next

	out := &dyn.UpdateItemOutput{}
	if in.ReturnValues == types.ReturnValueAllNew {
		out.Attributes = clone(next)
	}
	return out, nil
}

func (f *Fake) Query(ctx context.Context, in *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Query"); err != nil {
		return nil, err
	}
	if in.KeyConditionExpression == nil {
		return nil, validation("key condition is required")
	}
	m := keyRe.FindStringSubmatch(strings.TrimSpace(*in.KeyConditionExpression))
	if m == nil {
		return nil, validation("unsupported key condition " + *in.KeyConditionExpression)
	}
	attr, err := resolveName(m[1], in.ExpressionAttributeNames)
	if err != nil {
		return nil, err
	}
	want, ok := in.ExpressionAttributeValues[m[2]]
	if !ok {
		return nil, validation("missing expression value " + m[2])
	}

	call := QueryCall{Table: *in.TableName, Attr: attr, Value: want}
	if in.IndexName != nil {
		call.Index = *in.IndexName
	}
	f.Queries = append(f.Queries, call)

	tbl := f.table(*in.TableName)
	var matched []string
	for _, k := range sortedKeys(tbl) {
		if equal(tbl[k][attr], want) {
			matched = append(matched, k)
		}
	}

	start := 0
	if len(in.ExclusiveStartKey) > 0 {
		after := keyOf(in.ExclusiveStartKey)
		for i, k := range matched {
			if k == after {
				start = i + 1
				break
			}
		}
	}
	end := len(matched)
	limit := f.PageSize
	if in.Limit != nil && (limit == 0 || int(*in.Limit) < limit) {
		limit = int(*in.Limit)
	}
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	out := &dyn.QueryOutput{}
	for _, k := range matched[start:end] {
		out.Items = append(out.Items, clone(tbl[k]))
	}
	out.Count = int32(len(out.Items))
	if end < len(matched) {
		out.LastEvaluatedKey = keyAttrs(tbl[matched[end-1]])
	}
	return out, nil
}

func (f *Fake) begin(op string) error {
	f.Calls[op]++
	if err := f.Errors[op]; err != nil {
		return err
	}
	return nil
}

func (f *Fake) table(name string) map[string]Item {
	tbl, ok := f.tables[name]
	if !ok {
		tbl = map[string]Item{}
		f.tables[name] = tbl
	}
	return tbl
}

func apply(expr string, names map[string]string, values map[string]types.AttributeValue, item Item) error {
	expr = strings.Join(strings.Fields(expr), " ")
	locs := clauseRe.FindAllStringIndex(expr, -1)
	if len(locs) == 0 || locs[0][0] != 0 {
		return validation("unsupported update expression " + expr)
	}
	for i, loc := range locs {
		end := len(expr)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(expr[loc[1]:end])
		for _, part := range strings.Split(body, ",") {
			part = strings.TrimSpace(part)
			switch expr[loc[0]:loc[1]] {
			case "SET":
				lhs, rhs, ok := strings.Cut(part, "=")
				if !ok {
					return validation("malformed SET action " + part)
				}
				attr, err := resolveName(strings.TrimSpace(lhs), names)
				if err != nil {
					return err
				}
				v, ok := values[strings.TrimSpace(rhs)]
				if !ok {
					return validation("missing expression value " + rhs)
				}
				item[attr] = v
			case "REMOVE":
				attr, err := resolveName(part, names)
				if err != nil {
					return err
				}
				delete(item, attr)
			}
		}
	}
	return nil
}

func checkCondition(expr string, names map[string]string, current Item) error {
	m := existsRe.FindStringSubmatch(strings.TrimSpace(expr))
	if m == nil {
		return validation("unsupported condition " + expr)
	}
	attr, err := resolveName(m[2], names)
	if err != nil {
		return err
	}
	_, present := current[attr]
	if (m[1] == "" && !present) || (m[1] != "" && present) {
		return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}
	return nil
}

func resolveName(token string, names map[string]string) (string, error) {
	if strings.HasPrefix(token, "#") {
		attr, ok := names[token]
		if !ok {
			return "", validation("missing expression attribute name " + token)
		}
		return attr, nil
	}
	if reserved[strings.ToLower(token)] {
		return "", validation("attribute name is a reserved keyword: " + token)
	}
	return token, nil
}

var placeholderRe = regexp.MustCompile(`[#:][A-Za-z0-9_]+`)

func collect(expr string, used map[string]bool) {
	for _, p := range placeholderRe.FindAllString(expr, -1) {
		used[p] = true
	}
}

func validation(msg string) error {
	return &smithyValidation{msg: msg}
}

// smithyValidation mimics the API error DynamoDB returns for bad requests.
type smithyValidation struct{ msg string }

func (e *smithyValidation) Error() string     { return "ValidationException: " + e.msg }
func (e *smithyValidation) ErrorCode() string { return "ValidationException" }
func (e *smithyValidation) ErrorMessage() string {
	return e.msg
}
func (e *smithyValidation) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

var _ smithy.APIError = (*smithyValidation)(nil)

// IsValidation reports whether err was produced by the fake's request checks.
func IsValidation(err error) bool {
	var v *smithyValidation
	return errors.As(err, &v)
}

func isKeyAttr(name string) bool {
	return name == "PK" || name == "SK" || name == "id"
}

func keyAttrs(item Item) Item {
	out := Item{}
	for k, v := range item {
		if isKeyAttr(k) {
			out[k] = v
		}
	}
	return out
}

func keyOf(item Item) string {
	return keyString(keyAttrs(item))
}

func keyString(key Item) string {
	parts := make([]string, 0, len(key))
	for k, v := range key {
		parts = append(parts, k+"="+scalar(v))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func scalar(v types.AttributeValue) string {
	switch t := v.(type) {
	case *types.AttributeValueMemberS:
		return "S:" + t.Value
	case *types.AttributeValueMemberN:
		return "N:" + t.Value
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("BOOL:%t", t.Value)
	}
	return fmt.Sprintf("%T", v)
}

func equal(a, b types.AttributeValue) bool {
	if a == nil || b == nil {
		return false
	}
	return scalar(a) == scalar(b)
}

func clone(item Item) Item {
	if item == nil {
		return nil
	}
	out := make(Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func sortedKeys(tbl map[string]Item) []string {
	keys := make([]string, 0, len(tbl))
	for k := range tbl {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
