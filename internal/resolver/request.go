package resolver

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
)

// Request is the context AppSync passes to a direct Lambda resolver.
type Request struct {
	Arguments json.RawMessage                `json:"arguments,omitempty"`
	Identity  *events.AppSyncCognitoIdentity `json:"identity,omitempty"`
	Source    json.RawMessage                `json:"source,omitempty"`
	Info      Info                           `json:"info"`
	Request   HTTPRequest                    `json:"request"`
}

// Info identifies the field being resolved.
type Info struct {
	FieldName        string         `json:"fieldName" validate:"required"`
	ParentTypeName   string         `json:"parentTypeName" validate:"required"`
	Variables        map[string]any `json:"variables,omitempty"`
	SelectionSetList []string       `json:"selectionSetList,omitempty"`
}

// HTTPRequest carries the headers of the GraphQL request.
type HTTPRequest struct {
	Headers map[string]string `json:"headers,omitempty"`
}

// Request id headers, in lookup order. AppSync forwards header names lowercased.
var requestIDHeaders = []string{"x-amzn-requestid", "x-request-id"}

// RequestID returns the caller's request id header, or "".
func (r Request) RequestID() string {
	for _, h := range requestIDHeaders {
		if v := r.Request.Headers[h]; v != "" {
			return v
		}
	}
	return ""
}
