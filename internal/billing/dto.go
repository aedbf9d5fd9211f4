// AngelaMos | 2026
// dto.go

package billing

type CreateSubscriptionRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

type SubscriptionResponse struct {
	SubscriptionID string `json:"subscription_id"`
	Status         string `json:"status"`
	ClientSecret   string `json:"client_secret,omitempty"`
}

type SubscriptionStateResponse struct {
	SubscriptionID string `json:"subscription_id,omitempty"`
	Status         string `json:"status"`
	Active         bool   `json:"active"`
}
