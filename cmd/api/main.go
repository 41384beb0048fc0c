// Command api serves resolver requests over HTTP, locally or behind API
// Gateway.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/stripe-graphql-api/internal/app"
	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/resolver"
	"github.com/imrishuroy/stripe-graphql-api/internal/validation"
)

type Handler interface {
	Handle(ctx context.Context, req resolver.Request) (any, error)
}

func statusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindNotFound, apperr.KindRouting:
		return http.StatusNotFound
	case apperr.KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func setupRouter(h Handler, v *validation.Validator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// resolve takes the same event shape AppSync sends to the Lambda.
	r.POST("/resolve", func(c *gin.Context) {
		var req resolver.Request
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		if id := c.GetHeader("X-Request-Id"); id != "" {
			if req.Request.Headers == nil {
				req.Request.Headers = map[string]string{}
			}
			req.Request.Headers["x-request-id"] = id
		}

		out, err := h.Handle(c.Request.Context(), req)
		if err != nil {
			kind := apperr.KindOf(err)
			c.JSON(statusFor(kind), gin.H{
				"errorType":    kind.String(),
				"errorMessage": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": out})
	})

	return r
}

func main() {
	router, logger, err := app.Setup(context.Background())
	if err != nil {
		log.Fatalf("failed to set up resolver: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	r := setupRouter(router, validation.New())

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		addr := ":8080"
		log.Printf("running local server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
