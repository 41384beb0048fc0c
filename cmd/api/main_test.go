package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/resolver"
	"github.com/imrishuroy/stripe-graphql-api/internal/validation"
)

type stubHandler struct {
	out   any
	err   error
	calls int
	seen  resolver.Request
}

func (s *stubHandler) Handle(_ context.Context, req resolver.Request) (any, error) {
	s.calls++
	s.seen = req
	return s.out, s.err
}

func do(t *testing.T, h Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := setupRouter(h, validation.New())
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, &stubHandler{}, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestResolve_Success(t *testing.T) {
	stub := &stubHandler{out: map[string]any{"orderId": "o1"}}
	w := do(t, stub, http.MethodPost, "/resolve",
		`{"arguments":{"orderId":"o1"},"info":{"parentTypeName":"Query","fieldName":"getOrder"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"orderId":"o1"}}`, w.Body.String())
	assert.Equal(t, "getOrder", stub.seen.Info.FieldName)
	assert.JSONEq(t, `{"orderId":"o1"}`, string(stub.seen.Arguments))
}

func TestResolve_NullResult(t *testing.T) {
	w := do(t, &stubHandler{}, http.MethodPost, "/resolve",
		`{"info":{"parentTypeName":"Query","fieldName":"getOrder"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":null}`, w.Body.String())
}

func TestResolve_MissingInfo(t *testing.T) {
	stub := &stubHandler{}
	w := do(t, stub, http.MethodPost, "/resolve", `{"info":{"fieldName":"getOrder"}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"errorType":"InvalidInput"`)
	assert.Zero(t, stub.calls)
}

func TestResolve_MalformedBody(t *testing.T) {
	stub := &stubHandler{}
	w := do(t, stub, http.MethodPost, "/resolve", `{"info":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, stub.calls)
}

func TestResolve_ErrorStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", apperr.NotFound("Order not found"), http.StatusNotFound,
			`{"errorType":"NotFound","errorMessage":"Order not found"}`},
		{"routing", apperr.Routing("Query", "nope"), http.StatusNotFound,
			`{"errorType":"ResolverNotFound","errorMessage":"Resolver not found for Query.nope"}`},
		{"invalid", apperr.Invalid("Invalid plan: %s", "GOLD"), http.StatusBadRequest,
			`{"errorType":"InvalidInput","errorMessage":"Invalid plan: GOLD"}`},
		{"upstream", apperr.Upstream("Failed to fetch users", assert.AnError), http.StatusBadGateway,
			`{"errorType":"UpstreamFailure","errorMessage":"` + assert.AnError.Error() + `"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, &stubHandler{err: tc.err}, http.MethodPost, "/resolve",
				`{"info":{"parentTypeName":"Query","fieldName":"getOrder"}}`)
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestResolve_ForwardsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubHandler{}
	r := setupRouter(stub, validation.New())
	req := httptest.NewRequest(http.MethodPost, "/resolve",
		strings.NewReader(`{"info":{"parentTypeName":"Query","fieldName":"listOrders"}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-42", stub.seen.RequestID())
}
