// Package app wires configuration, AWS clients and repositories into a
// resolver Router for the entrypoints under cmd/.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/imrishuroy/stripe-graphql-api/internal/aws"
	"github.com/imrishuroy/stripe-graphql-api/internal/billing"
	"github.com/imrishuroy/stripe-graphql-api/internal/config"
	"github.com/imrishuroy/stripe-graphql-api/internal/logging"
	"github.com/imrishuroy/stripe-graphql-api/internal/orders"
	"github.com/imrishuroy/stripe-graphql-api/internal/payments"
	"github.com/imrishuroy/stripe-graphql-api/internal/products"
	"github.com/imrishuroy/stripe-graphql-api/internal/resolver"
	"github.com/imrishuroy/stripe-graphql-api/internal/subscriptions"
	"github.com/imrishuroy/stripe-graphql-api/internal/users"
)

// Setup loads configuration, builds the logger and returns a ready Router.
// It fails when the Stripe secret key is missing.
func Setup(ctx context.Context) (*resolver.Router, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}

	clients, err := aws.NewAWSClients(ctx, aws.Settings{
		Region:   cfg.Region,
		Endpoint: cfg.EndpointOverride,
		Offline:  cfg.Offline,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init aws clients: %w", err)
	}

	logger.Info("resolver configured",
		zap.String("stage", cfg.Stage),
		zap.Bool("offline", cfg.Offline),
		zap.Bool("events", cfg.EventsQueueURL != ""),
		zap.Bool("metrics", cfg.MetricsNamespace != ""),
	)
	provider := billing.NewStripeProvider(cfg.Stripe.SecretKey)
	return resolver.New(Dependencies(cfg, clients, provider, logger)), logger, nil
}

// Dependencies builds the Router collaborators. The change publisher and
// the metrics recorder are only set when configured.
func Dependencies(cfg *config.Config, clients *aws.AWSClients, provider billing.Provider, logger *zap.Logger) resolver.Dependencies {
	prices := billing.NewPrices(cfg.Stripe.PriceStarter, cfg.Stripe.PricePro, cfg.Stripe.PricePartner)

	d := resolver.Dependencies{
		Users:         users.NewStore(clients.DynamoDB, cfg.Tables.Users).WithLogger(logger),
		Subscriptions: subscriptions.NewStore(clients.DynamoDB, cfg.Tables.Subscriptions).WithLogger(logger),
		Orders:        orders.NewStore(clients.DynamoDB, cfg.Tables.Orders).WithLogger(logger),
		Products:      products.NewStore(clients.DynamoDB, cfg.Tables.Products).WithLogger(logger),
		Payments:      payments.NewStore(clients.DynamoDB, cfg.Tables.Payments).WithLogger(logger),
		Billing:       billing.NewGateway(provider, prices).WithLogger(logger),
		Logger:        logger,
	}
	if cfg.EventsQueueURL != "" {
		d.Events = aws.NewPublisher(clients.SQS, cfg.EventsQueueURL)
	}
	if cfg.MetricsNamespace != "" {
		d.Metrics = aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace)
	}
	return d
}
