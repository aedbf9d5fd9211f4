// AngelaMos | 2026
// webhook.go

package billing

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stripe/stripe-go/v72"

	"github.com/liftingtracker/backend/internal/core"
)

const webhookMaxBody = 64 << 10

// WebhookHandler reconciles provider-pushed subscription changes.
// Authentication is the payload signature, so these routes sit outside
// the session middleware.
type WebhookHandler struct {
	service  *Service
	provider *StripeProvider
	logger   *slog.Logger
}

func NewWebhookHandler(
	service *Service,
	provider *StripeProvider,
	logger *slog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		service:  service,
		provider: provider,
		logger:   logger,
	}
}

func (h *WebhookHandler) RegisterRoutes(r chi.Router) {
	r.Post("/billing/webhook", h.HandleWebhook)
}

func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, webhookMaxBody))
	if err != nil {
		core.BadRequest(w, "unable to read payload")
		return
	}

	event, err := h.provider.ConstructEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("webhook signature rejected", slog.String("error", err.Error()))
		core.BadRequest(w, "invalid signature")
		return
	}

	switch event.Type {
	case "customer.subscription.updated", "customer.subscription.deleted":
		var subscription stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
			core.BadRequest(w, "malformed event payload")
			return
		}

		if subscription.Customer == nil {
			break
		}

		status := string(subscription.Status)
		if event.Type == "customer.subscription.deleted" {
			status = StatusCanceled
		}

		err = h.service.ApplyProviderStatus(
			r.Context(),
			subscription.Customer.ID,
			subscription.ID,
			status,
		)
		if err != nil {
			core.InternalServerError(w, err)
			return
		}

	case "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			core.BadRequest(w, "malformed event payload")
			return
		}

		// One-off invoices carry no subscription reference.
		if invoice.Customer == nil || invoice.Subscription == nil {
			break
		}

		err = h.service.ApplyProviderStatus(
			r.Context(),
			invoice.Customer.ID,
			invoice.Subscription.ID,
			StatusPastDue,
		)
		if err != nil {
			core.InternalServerError(w, err)
			return
		}

	default:
		h.logger.Debug("webhook event ignored", slog.String("type", string(event.Type)))
	}

	core.OK(w, map[string]bool{"received": true})
}
