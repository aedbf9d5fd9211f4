// AngelaMos | 2026
// provider.go

package billing

import (
	"context"
)

// Subscription statuses as reported by the billing provider. The empty
// string means the user has never had a subscription.
const (
	StatusNone       = ""
	StatusIncomplete = "incomplete"
	StatusActive     = "active"
	StatusTrialing   = "trialing"
	StatusPastDue    = "past_due"
	StatusCanceled   = "canceled"
)

func IsActiveStatus(status string) bool {
	return status == StatusActive || status == StatusTrialing
}

// Provider is the recurring-billing gateway. Every method is a single
// synchronous call; failures carry the provider's message verbatim
// wrapped in core.ErrProvider.
type Provider interface {
	CreateCustomer(
		ctx context.Context,
		email, name, paymentMethodID string,
	) (string, error)
	AttachPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error
	SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error
	CreateSubscription(ctx context.Context, customerID string) (*ProviderSubscription, error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

type ProviderSubscription struct {
	ID     string
	Status string

	// ClientSecret is set when the first invoice is not yet paid and
	// the caller must complete 3-D-Secure confirmation client-side.
	ClientSecret string
}

// AccountState is the billing-relevant slice of a user record.
type AccountState struct {
	UserID         string
	Email          string
	DisplayName    string
	CustomerID     string
	SubscriptionID string
	Status         string
}

// UserStore persists billing references on the owning user record.
// Implemented by the user service.
type UserStore interface {
	GetBillingState(ctx context.Context, userID string) (*AccountState, error)
	SetCustomerID(ctx context.Context, userID, customerID string) error
	SetSubscription(ctx context.Context, userID, subscriptionID, status string) error
	SetSubscriptionStatus(ctx context.Context, userID, status string) error
	FindUserIDByCustomer(ctx context.Context, customerID string) (string, error)
}
