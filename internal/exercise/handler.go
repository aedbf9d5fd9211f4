// AngelaMos | 2026
// handler.go

package exercise

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/liftingtracker/backend/internal/core"
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

// RegisterRoutes mounts the read-only catalog for signed-in users.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/exercises", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListExercises)
		r.Get("/{exerciseID}", h.GetExercise)
	})
}

// RegisterAdminRoutes mounts catalog curation for admins.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/exercises", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/", h.CreateExercise)
		r.Put("/{exerciseID}", h.UpdateExercise)
		r.Delete("/{exerciseID}", h.DeleteExercise)
	})
}

func (h *Handler) ListExercises(w http.ResponseWriter, r *http.Request) {
	params := ListExercisesParams{
		Page:        parseIntQuery(r, "page", 1),
		PageSize:    parseIntQuery(r, "page_size", 50),
		Category:    r.URL.Query().Get("category"),
		MuscleGroup: r.URL.Query().Get("muscle_group"),
		Search:      r.URL.Query().Get("search"),
	}
	params.Normalize()

	exercises, total, err := h.service.ListExercises(r.Context(), params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(w, ToExerciseResponseList(exercises), params.Page, params.PageSize, total)
}

func (h *Handler) GetExercise(w http.ResponseWriter, r *http.Request) {
	exercise, err := h.service.GetExercise(r.Context(), chi.URLParam(r, "exerciseID"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToExerciseResponse(exercise))
}

func (h *Handler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	var req SaveExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	exercise, err := h.service.CreateExercise(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToExerciseResponse(exercise))
}

func (h *Handler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	var req SaveExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	exercise, err := h.service.UpdateExercise(r.Context(), chi.URLParam(r, "exerciseID"), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToExerciseResponse(exercise))
}

func (h *Handler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteExercise(r.Context(), chi.URLParam(r, "exerciseID")); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return n
}
