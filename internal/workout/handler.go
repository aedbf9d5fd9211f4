// AngelaMos | 2026
// handler.go

package workout

import (
	"encoding/json"
	"net/http"
	"strconv"

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

// RegisterRoutes mounts the tracker. The gate middleware keeps the
// whole group behind an active subscription.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	gate func(http.Handler) http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) {
	r.Route("/workouts", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(gate)
		r.Use(middlewares...)

		r.Get("/", h.ListWorkouts)
		r.Post("/", h.SaveWorkout)
		r.Get("/progress", h.GetProgress)
		r.Get("/summary", h.GetSummary)
		r.Get("/{workoutID}", h.GetWorkout)
		r.Put("/{workoutID}", h.UpdateWorkout)
		r.Delete("/{workoutID}", h.DeleteWorkout)
	})
}

func (h *Handler) SaveWorkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req SaveWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	workout, err := h.service.SaveWorkout(r.Context(), userID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToWorkoutResponse(workout))
}

func (h *Handler) GetWorkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workoutID := chi.URLParam(r, "workoutID")

	workout, err := h.service.GetWorkout(r.Context(), userID, workoutID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToWorkoutResponse(workout))
}

func (h *Handler) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workoutID := chi.URLParam(r, "workoutID")

	var req SaveWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	workout, err := h.service.UpdateWorkout(r.Context(), userID, workoutID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToWorkoutResponse(workout))
}

func (h *Handler) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workoutID := chi.URLParam(r, "workoutID")

	if err := h.service.DeleteWorkout(r.Context(), userID, workoutID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	params := ListWorkoutsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
	}
	params.Normalize()

	workouts, total, err := h.service.ListWorkouts(r.Context(), userID, params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(w, ToWorkoutResponseList(workouts), params.Page, params.PageSize, total)
}

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	points, err := h.service.GetProgress(
		r.Context(),
		userID,
		r.URL.Query().Get("exercise"),
		r.URL.Query().Get("period"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, points)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summary, err := h.service.GetSummary(r.Context(), userID, r.URL.Query().Get("period"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, summary)
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
