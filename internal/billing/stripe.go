// AngelaMos | 2026
// stripe.go

package billing

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/customer"
	"github.com/stripe/stripe-go/v72/paymentmethod"
	"github.com/stripe/stripe-go/v72/sub"
	"github.com/stripe/stripe-go/v72/webhook"

	"github.com/liftingtracker/backend/internal/config"
	"github.com/liftingtracker/backend/internal/core"
)

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	priceID       string
	webhookSecret string
}

func NewStripeProvider(cfg config.StripeConfig) *StripeProvider {
	stripe.Key = cfg.SecretKey

	return &StripeProvider{
		priceID:       cfg.PriceID,
		webhookSecret: cfg.WebhookSecret,
	}
}

func (p *StripeProvider) CreateCustomer(
	ctx context.Context,
	email, name, paymentMethodID string,
) (string, error) {
	params := &stripe.CustomerParams{
		Email:         stripe.String(email),
		Name:          stripe.String(name),
		PaymentMethod: stripe.String(paymentMethodID),
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
	params.Context = ctx

	c, err := customer.New(params)
	if err != nil {
		return "", providerError(err)
	}

	return c.ID, nil
}

func (p *StripeProvider) AttachPaymentMethod(
	ctx context.Context,
	customerID, paymentMethodID string,
) error {
	params := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	if _, err := paymentmethod.Attach(paymentMethodID, params); err != nil {
		return providerError(err)
	}

	return nil
}

func (p *StripeProvider) SetDefaultPaymentMethod(
	ctx context.Context,
	customerID, paymentMethodID string,
) error {
	params := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
	params.Context = ctx

	if _, err := customer.Update(customerID, params); err != nil {
		return providerError(err)
	}

	return nil
}

func (p *StripeProvider) CreateSubscription(
	ctx context.Context,
	customerID string,
) (*ProviderSubscription, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(p.priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
		PaymentSettings: &stripe.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
		},
	}
	params.Context = ctx
	params.AddExpand("latest_invoice.payment_intent")

	s, err := sub.New(params)
	if err != nil {
		return nil, providerError(err)
	}

	result := &ProviderSubscription{
		ID:     s.ID,
		Status: string(s.Status),
	}
	if s.LatestInvoice != nil && s.LatestInvoice.PaymentIntent != nil {
		result.ClientSecret = s.LatestInvoice.PaymentIntent.ClientSecret
	}

	return result, nil
}

func (p *StripeProvider) CancelSubscription(ctx context.Context, subscriptionID string) error {
	params := &stripe.SubscriptionCancelParams{}
	params.Context = ctx

	if _, err := sub.Cancel(subscriptionID, params); err != nil {
		return providerError(err)
	}

	return nil
}

// ConstructEvent verifies a webhook payload signature and parses the event.
func (p *StripeProvider) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, p.webhookSecret)
}

// providerError surfaces Stripe's own message to the caller.
func providerError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return core.ProviderError(stripeErr.Msg)
	}

	return core.ProviderError(err.Error())
}

var _ Provider = (*StripeProvider)(nil)
