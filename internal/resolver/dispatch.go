package resolver

import (
	"context"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/orders"
	"github.com/imrishuroy/stripe-graphql-api/internal/products"
)

// Change notification names.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status_updated"
	EventProductLowStock    = "product.low_stock"
)

func (r *Router) dispatch(ctx context.Context, op Operation, req Request) (any, error) {
	switch op {
	case OpUsers:
		return r.users.List(ctx)
	case OpGetUser:
		args, err := bind[idArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.users.Get(ctx, args.ID)

	case OpGetSubscription:
		args, err := bind[idArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.subscriptions.Get(ctx, args.ID)
	case OpListSubscriptions:
		return r.subscriptions.List(ctx)
	case OpGetSubscriptionsByUser:
		args, err := bind[userIDArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.subscriptions.ListByUser(ctx, args.UserID)

	case OpGetOrder:
		args, err := bind[orderIDArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.orders.Get(ctx, args.OrderID)
	case OpListOrders:
		return r.orders.List(ctx)
	case OpGetOrdersByCustomer:
		args, err := bind[customerIDArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.orders.ListByCustomer(ctx, args.CustomerID)

	case OpGetProduct:
		args, err := bind[productIDArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.products.Get(ctx, args.ProductID)
	case OpListProducts:
		return r.products.List(ctx)
	case OpGetProductsByCategory:
		args, err := bind[categoryArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.products.ListByCategory(ctx, args.Category)
	case OpGetLowStockProducts:
		return r.products.ListLowStock(ctx)

	case OpGetPayment:
		args, err := bind[paymentIDArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.payments.Get(ctx, args.PaymentID)
	case OpGetPaymentsByOrder:
		args, err := bind[orderIDArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.payments.ListByOrder(ctx, args.OrderID)
	case OpGetFailedPayments:
		return r.payments.ListFailed(ctx)

	case OpPlanSubscriptionCreate:
		args, err := bind[planArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.billing.CreateSubscriptionForCaller(ctx, req.Identity, args.Plan)
	case OpCreateUser:
		args, err := bind[createUserArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.users.Create(ctx, *args.Input)
	case OpCreateSubscription:
		args, err := bind[createSubscriptionArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.subscriptions.Create(ctx, *args.Input)
	case OpUpdateSubscription:
		args, err := bind[updateSubscriptionArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.subscriptions.Update(ctx, *args.Input)
	case OpDeleteSubscription:
		args, err := bind[idArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.subscriptions.Delete(ctx, args.ID)
	case OpCreateOrder:
		return r.createOrder(ctx, req)
	case OpUpdateOrderStatus:
		return r.updateOrderStatus(ctx, req)
	case OpCreateProduct:
		return r.createProduct(ctx, req)
	case OpUpdateProduct:
		return r.updateProduct(ctx, req)
	case OpDeleteProduct:
		args, err := bind[productIDArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.products.Delete(ctx, args.ProductID)
	case OpCreatePayment:
		args, err := bind[createPaymentArgs](r, req)
		if err != nil {
			return nil, err
		}
		return r.payments.Create(ctx, *args.Input)
	}
	return nil, apperr.Routing(req.Info.ParentTypeName, req.Info.FieldName)
}

func (r *Router) createOrder(ctx context.Context, req Request) (*orders.Order, error) {
	args, err := bind[createOrderArgs](r, req)
	if err != nil {
		return nil, err
	}
	o, err := r.orders.Create(ctx, *args.Input)
	if err != nil {
		return nil, err
	}
	r.publish(ctx, EventOrderCreated, orders.TypeOrder, o.OrderID)
	return o, nil
}

func (r *Router) updateOrderStatus(ctx context.Context, req Request) (*orders.Order, error) {
	args, err := bind[orderStatusArgs](r, req)
	if err != nil {
		return nil, err
	}
	o, err := r.orders.UpdateStatus(ctx, args.OrderID, args.Status)
	if err != nil {
		return nil, err
	}
	r.publish(ctx, EventOrderStatusUpdated, orders.TypeOrder, o.OrderID)
	return o, nil
}

func (r *Router) createProduct(ctx context.Context, req Request) (*products.Product, error) {
	args, err := bind[createProductArgs](r, req)
	if err != nil {
		return nil, err
	}
	p, err := r.products.Create(ctx, *args.Input)
	if err != nil {
		return nil, err
	}
	if p.LowStock == products.LowStock {
		r.publish(ctx, EventProductLowStock, products.TypeProduct, p.ProductID)
	}
	return p, nil
}

func (r *Router) updateProduct(ctx context.Context, req Request) (*products.Product, error) {
	args, err := bind[updateProductArgs](r, req)
	if err != nil {
		return nil, err
	}
	p, err := r.products.Update(ctx, *args.Input)
	if err != nil {
		return nil, err
	}
	if p.LowStock == products.LowStock {
		r.publish(ctx, EventProductLowStock, products.TypeProduct, p.ProductID)
	}
	return p, nil
}
