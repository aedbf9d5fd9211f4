// AngelaMos | 2026
// handler.go

package registration

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/liftingtracker/backend/internal/core"
	"github.com/liftingtracker/backend/internal/middleware"
)

type Handler struct {
	service *Service
	csrf    *middleware.CSRFGuard
}

func NewHandler(service *Service, csrf *middleware.CSRFGuard) *Handler {
	return &Handler{
		service: service,
		csrf:    csrf,
	}
}

// RegisterRoutes mounts the wizard. Start is the only route outside the
// CSRF guard; it is what hands the client its token.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/registration/start", h.Start)

	r.Group(func(r chi.Router) {
		r.Use(h.csrf.Require)

		r.Get("/registration/draft", h.GetDraft)
		r.Post("/registration/next", h.Next)
		r.Post("/registration/prev", h.Prev)
		r.Post("/registration/complete", h.Complete)
		r.Delete("/registration/draft", h.Restart)
	})
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	token, err := h.csrf.Issue(r.Context(), w, r)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	draft, err := h.service.StartOrResume(r.Context(), h.csrf.SessionID(r))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, StartResponse{
		Draft:     ToDraftState(draft),
		CSRFToken: token,
	})
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.Get(r.Context(), h.csrf.SessionID(r))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToDraftState(draft))
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeStep(w, r)
	if !ok {
		return
	}

	draft, err := h.service.Next(r.Context(), h.csrf.SessionID(r), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToDraftState(draft))
}

func (h *Handler) Prev(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeStep(w, r)
	if !ok {
		return
	}

	draft, err := h.service.Prev(r.Context(), h.csrf.SessionID(r), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToDraftState(draft))
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeStep(w, r)
	if !ok {
		return
	}

	session, err := h.service.Complete(
		r.Context(),
		h.csrf.SessionID(r),
		req,
		r.UserAgent(),
		extractIPAddress(r),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, session)
}

func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.Restart(r.Context(), h.csrf.SessionID(r))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToDraftState(draft))
}

func decodeStep(w http.ResponseWriter, r *http.Request) (*StepRequest, bool) {
	var req StepRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "invalid request body")
			return nil, false
		}
	}

	return &req, true
}

func extractIPAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[len(ips)-1])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
