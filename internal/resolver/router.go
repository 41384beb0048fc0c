// Package resolver routes AppSync resolver requests to the repositories and
// the billing gateway.
package resolver

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/aws"
	"github.com/imrishuroy/stripe-graphql-api/internal/billing"
	"github.com/imrishuroy/stripe-graphql-api/internal/orders"
	"github.com/imrishuroy/stripe-graphql-api/internal/payments"
	"github.com/imrishuroy/stripe-graphql-api/internal/products"
	"github.com/imrishuroy/stripe-graphql-api/internal/subscriptions"
	"github.com/imrishuroy/stripe-graphql-api/internal/users"
	"github.com/imrishuroy/stripe-graphql-api/internal/validation"
)

// UserStore persists users.
type UserStore interface {
	Create(ctx context.Context, in users.CreateInput) (*users.User, error)
	Get(ctx context.Context, id string) (*users.User, error)
	List(ctx context.Context) ([]users.User, error)
}

// SubscriptionStore persists subscriptions.
type SubscriptionStore interface {
	Create(ctx context.Context, in subscriptions.CreateInput) (*subscriptions.Subscription, error)
	Get(ctx context.Context, id string) (*subscriptions.Subscription, error)
	List(ctx context.Context) ([]subscriptions.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]subscriptions.Subscription, error)
	Update(ctx context.Context, in subscriptions.UpdateInput) (*subscriptions.Subscription, error)
	Delete(ctx context.Context, id string) (*subscriptions.Subscription, error)
}

// OrderStore persists orders.
type OrderStore interface {
	Create(ctx context.Context, in orders.CreateInput) (*orders.Order, error)
	Get(ctx context.Context, orderID string) (*orders.Order, error)
	List(ctx context.Context) ([]orders.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]orders.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status orders.Status) (*orders.Order, error)
}

// ProductStore persists products and their low-stock marker.
type ProductStore interface {
	Create(ctx context.Context, in products.CreateInput) (*products.Product, error)
	Get(ctx context.Context, productID string) (*products.Product, error)
	List(ctx context.Context) ([]products.Product, error)
	ListByCategory(ctx context.Context, category string) ([]products.Product, error)
	ListLowStock(ctx context.Context) ([]products.Product, error)
	Update(ctx context.Context, in products.UpdateInput) (*products.Product, error)
	Delete(ctx context.Context, productID string) (*products.Product, error)
}

// PaymentStore persists payments.
type PaymentStore interface {
	Create(ctx context.Context, in payments.CreateInput) (*payments.Payment, error)
	Get(ctx context.Context, paymentID string) (*payments.Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]payments.Payment, error)
	ListFailed(ctx context.Context) ([]payments.Payment, error)
}

// Billing subscribes the calling user to a plan with the payment provider.
type Billing interface {
	CreateSubscriptionForCaller(ctx context.Context, identity *events.AppSyncCognitoIdentity, plan subscriptions.Plan) (*billing.PlanSubscription, error)
}

// EventPublisher announces committed changes.
type EventPublisher interface {
	Publish(ctx context.Context, ev aws.Event) error
}

// MetricsRecorder counts resolver invocations.
type MetricsRecorder interface {
	RecordResolver(ctx context.Context, typeName, fieldName string, failed bool) error
}

// Dependencies are the collaborators of a Router. Events and Metrics are
// optional.
type Dependencies struct {
	Users         UserStore
	Subscriptions SubscriptionStore
	Orders        OrderStore
	Products      ProductStore
	Payments      PaymentStore
	Billing       Billing
	Events        EventPublisher
	Metrics       MetricsRecorder
	Logger        *zap.Logger
}

// Router dispatches resolver requests.
type Router struct {
	users         UserStore
	subscriptions SubscriptionStore
	orders        OrderStore
	products      ProductStore
	payments      PaymentStore
	billing       Billing
	events        EventPublisher
	metrics       MetricsRecorder
	validator     *validation.Validator
	logger        *zap.Logger
	nowFunc       func() time.Time
}

// New returns a Router over d.
func New(d Dependencies) *Router {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		users:         d.Users,
		subscriptions: d.Subscriptions,
		orders:        d.Orders,
		products:      d.Products,
		payments:      d.Payments,
		billing:       d.Billing,
		events:        d.Events,
		metrics:       d.Metrics,
		validator:     validation.New(),
		logger:        logger,
		nowFunc:       func() time.Time { return time.Now().UTC() },
	}
}

// Handle resolves req. An unregistered (type, field) pair fails with a
// routing error before any collaborator is called; handler errors are
// returned unchanged.
func (r *Router) Handle(ctx context.Context, req Request) (any, error) {
	field := Field{Type: req.Info.ParentTypeName, Name: req.Info.FieldName}
	log := r.logger.With(zap.String("field", field.String()))
	if id := req.RequestID(); id != "" {
		log = log.With(zap.String("requestId", id))
	}

	op, ok := Lookup(field)
	if !ok {
		log.Error("resolver not found")
		return nil, apperr.Routing(field.Type, field.Name)
	}

	start := time.Now()
	out, err := r.dispatch(ctx, op, req)
	r.record(ctx, field, err)
	if err != nil {
		log.Warn("resolver failed",
			zap.String("errorType", apperr.KindOf(err).String()),
			zap.Error(err),
			zap.Duration("took", time.Since(start)),
		)
		return nil, err
	}
	log.Info("resolver completed", zap.Duration("took", time.Since(start)))
	return out, nil
}

func (r *Router) record(ctx context.Context, f Field, err error) {
	if r.metrics == nil {
		return
	}
	if merr := r.metrics.RecordResolver(ctx, f.Type, f.Name, err != nil); merr != nil {
		r.logger.Warn("record metrics", zap.String("field", f.String()), zap.Error(merr))
	}
}

// publish announces a committed change. Failures are logged only.
func (r *Router) publish(ctx context.Context, event, entity, id string) {
	if r.events == nil {
		return
	}
	ev := aws.Event{Event: event, Entity: entity, ID: id, At: r.nowFunc()}
	if err := r.events.Publish(ctx, ev); err != nil {
		r.logger.Warn("publish event", zap.String("event", event), zap.String("id", id), zap.Error(err))
	}
}
