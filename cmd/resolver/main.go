// Command resolver is the AppSync direct Lambda resolver.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambda/messages"

	"github.com/imrishuroy/stripe-graphql-api/internal/app"
	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/resolver"
)

type Handler interface {
	Handle(ctx context.Context, req resolver.Request) (any, error)
}

// newHandler adapts h to the Lambda runtime. Errors are returned as
// InvokeResponse_Error so AppSync sees the errorType.
func newHandler(h Handler) func(context.Context, resolver.Request) (any, error) {
	return func(ctx context.Context, req resolver.Request) (any, error) {
		out, err := h.Handle(ctx, req)
		if err != nil {
			return nil, toInvokeError(err)
		}
		return out, nil
	}
}

func toInvokeError(err error) error {
	return messages.InvokeResponse_Error{
		Message: err.Error(),
		Type:    apperr.KindOf(err).String(),
	}
}

// runLocal resolves a single event read from LOCAL_EVENT_FILE or LOCAL_EVENT.
func runLocal(ctx context.Context, h Handler) ([]byte, error) {
	raw := []byte(os.Getenv("LOCAL_EVENT"))
	if path := os.Getenv("LOCAL_EVENT_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read local event: %w", err)
		}
		raw = data
	}
	if len(raw) == 0 {
		raw = []byte(`{"arguments":{},"info":{"parentTypeName":"Query","fieldName":"listProducts"}}`)
	}

	var req resolver.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("unmarshal local event: %w", err)
	}
	out, err := newHandler(h)(ctx, req)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(out, "", "  ")
}

func main() {
	router, logger, err := app.Setup(context.Background())
	if err != nil {
		log.Fatalf("failed to set up resolver: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if os.Getenv("RUN_LOCAL") == "true" {
		out, err := runLocal(context.Background(), router)
		if err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	lambda.Start(newHandler(router))
}
