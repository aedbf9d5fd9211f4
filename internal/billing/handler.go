// AngelaMos | 2026
// handler.go

package billing

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/liftingtracker/backend/internal/core"
	"github.com/liftingtracker/backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) {
	r.Route("/billing", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middlewares...)

		r.Get("/subscription", h.GetSubscription)
		r.Post("/subscription", h.CreateSubscription)
		r.Delete("/subscription", h.CancelSubscription)
	})
}

func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	state, err := h.service.GetSubscriptionState(r.Context(), userID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, state)
}

func (h *Handler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.CreateSubscription(r.Context(), userID, req.PaymentMethodID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.service.CancelSubscription(r.Context(), userID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, map[string]string{"status": StatusCanceled})
}
