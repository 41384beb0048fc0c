package resolver

// Operation is a resolvable GraphQL field.
type Operation int

const (
	opUnknown Operation = iota

	OpUsers
	OpGetUser
	OpGetSubscription
	OpListSubscriptions
	OpGetSubscriptionsByUser
	OpGetOrder
	OpListOrders
	OpGetOrdersByCustomer
	OpGetProduct
	OpListProducts
	OpGetProductsByCategory
	OpGetLowStockProducts
	OpGetPayment
	OpGetPaymentsByOrder
	OpGetFailedPayments

	OpPlanSubscriptionCreate
	OpCreateUser
	OpCreateSubscription
	OpUpdateSubscription
	OpDeleteSubscription
	OpCreateOrder
	OpUpdateOrderStatus
	OpCreateProduct
	OpUpdateProduct
	OpDeleteProduct
	OpCreatePayment

	opCount
)

const (
	typeQuery    = "Query"
	typeMutation = "Mutation"
)

// Field is a (parent type, field name) pair.
type Field struct {
	Type string
	Name string
}

func (f Field) String() string {
	return f.Type + "." + f.Name
}

// registrations binds every Operation to its GraphQL field.
var registrations = []struct {
	Field Field
	Op    Operation
}{
	{Field{typeQuery, "users"}, OpUsers},
	{Field{typeQuery, "getUser"}, OpGetUser},
	{Field{typeQuery, "getSubscription"}, OpGetSubscription},
	{Field{typeQuery, "listSubscriptions"}, OpListSubscriptions},
	{Field{typeQuery, "getSubscriptionsByUser"}, OpGetSubscriptionsByUser},
	{Field{typeQuery, "getOrder"}, OpGetOrder},
	{Field{typeQuery, "listOrders"}, OpListOrders},
	{Field{typeQuery, "getOrdersByCustomer"}, OpGetOrdersByCustomer},
	{Field{typeQuery, "getProduct"}, OpGetProduct},
	{Field{typeQuery, "listProducts"}, OpListProducts},
	{Field{typeQuery, "getProductsByCategory"}, OpGetProductsByCategory},
	{Field{typeQuery, "getLowStockProducts"}, OpGetLowStockProducts},
	{Field{typeQuery, "getPayment"}, OpGetPayment},
	{Field{typeQuery, "getPaymentsByOrder"}, OpGetPaymentsByOrder},
	{Field{typeQuery, "getFailedPayments"}, OpGetFailedPayments},

	{Field{typeMutation, "planSubscriptionCreate"}, OpPlanSubscriptionCreate},
	{Field{typeMutation, "createUser"}, OpCreateUser},
	{Field{typeMutation, "createSubscription"}, OpCreateSubscription},
	{Field{typeMutation, "updateSubscription"}, OpUpdateSubscription},
	{Field{typeMutation, "deleteSubscription"}, OpDeleteSubscription},
	{Field{typeMutation, "createOrder"}, OpCreateOrder},
	{Field{typeMutation, "updateOrderStatus"}, OpUpdateOrderStatus},
	{Field{typeMutation, "createProduct"}, OpCreateProduct},
	{Field{typeMutation, "updateProduct"}, OpUpdateProduct},
	{Field{typeMutation, "deleteProduct"}, OpDeleteProduct},
	{Field{typeMutation, "createPayment"}, OpCreatePayment},
}

var routes = func() map[Field]Operation {
	m := make(map[Field]Operation, len(registrations))
	for _, r := range registrations {
		m[r.Field] = r.Op
	}
	return m
}()

// Lookup returns the Operation registered for f.
func Lookup(f Field) (Operation, bool) {
	op, ok := routes[f]
	return op, ok
}

// Fields lists every registered field in registration order.
func Fields() []Field {
	out := make([]Field, 0, len(registrations))
	for _, r := range registrations {
		out = append(out, r.Field)
	}
	return out
}
