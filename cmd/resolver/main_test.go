package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-lambda-go/lambda/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/resolver"
)

type stubHandler struct {
	out  any
	err  error
	seen resolver.Request
}

func (s *stubHandler) Handle(_ context.Context, req resolver.Request) (any, error) {
	s.seen = req
	return s.out, s.err
}

func TestHandler_ErrorTypes(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantType string
	}{
		{"not found", apperr.NotFound("Order not found"), "NotFound"},
		{"invalid", apperr.Invalid("Invalid plan: %s", "GOLD"), "InvalidInput"},
		{"routing", apperr.Routing("Query", "nope"), "ResolverNotFound"},
		{"unclassified", errors.New("boom"), "UpstreamFailure"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHandler(&stubHandler{err: tc.err})
			out, err := h(context.Background(), resolver.Request{})
			assert.Nil(t, out)

			var ie messages.InvokeResponse_Error
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tc.wantType, ie.Type)
			assert.Equal(t, tc.err.Error(), ie.Message)
		})
	}
}

func TestHandler_PassesResult(t *testing.T) {
	stub := &stubHandler{out: map[string]string{"id": "1"}}
	out, err := newHandler(stub)(context.Background(), resolver.Request{
		Info: resolver.Info{ParentTypeName: "Query", FieldName: "getOrder"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "1"}, out)
	assert.Equal(t, "getOrder", stub.seen.Info.FieldName)
}

func TestRunLocal_ReadsEventFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"arguments":{"id":"p1"},"info":{"parentTypeName":"Query","fieldName":"getProduct"}}`), 0o600))
	t.Setenv("LOCAL_EVENT_FILE", path)

	stub := &stubHandler{out: map[string]string{"productId": "p1"}}
	out, err := runLocal(context.Background(), stub)
	require.NoError(t, err)
	assert.JSONEq(t, `{"productId":"p1"}`, string(out))
	assert.Equal(t, "getProduct", stub.seen.Info.FieldName)
	assert.JSONEq(t, `{"id":"p1"}`, string(stub.seen.Arguments))
}

func TestRunLocal_DefaultEvent(t *testing.T) {
	t.Setenv("LOCAL_EVENT_FILE", "")
	t.Setenv("LOCAL_EVENT", "")

	stub := &stubHandler{out: []string{}}
	out, err := runLocal(context.Background(), stub)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
	assert.Equal(t, "listProducts", stub.seen.Info.FieldName)
}
