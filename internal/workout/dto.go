// AngelaMos | 2026
// dto.go

package workout

import (
	"time"
)

type ExerciseEntryRequest struct {
	ExerciseID *string `json:"exercise_id,omitempty" validate:"omitempty,uuid"`
	Name       string  `json:"name" validate:"required,max=120"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	Notes      string  `json:"notes,omitempty" validate:"max=1000"`
}

type SaveWorkoutRequest struct {
	Title     string                 `json:"title" validate:"required,max=200"`
	Notes     string                 `json:"notes" validate:"max=5000"`
	Date      string                 `json:"date" validate:"required,datetime=2006-01-02"`
	Duration  int                    `json:"duration"`
	Calories  int                    `json:"calories"`
	Exercises []ExerciseEntryRequest `json:"exercises" validate:"dive"`
}

type WorkoutResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Notes     string          `json:"notes,omitempty"`
	Date      string          `json:"date"`
	Duration  int             `json:"duration"`
	Calories  int             `json:"calories"`
	Exercises ExerciseEntries `json:"exercises"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func ToWorkoutResponse(w *Workout) *WorkoutResponse {
	return &WorkoutResponse{
		ID:        w.ID,
		Title:     w.Title,
		Notes:     w.Notes,
		Date:      w.WorkoutDate.Format(time.DateOnly),
		Duration:  w.DurationMin,
		Calories:  w.CaloriesBurned,
		Exercises: w.Exercises,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func ToWorkoutResponseList(workouts []Workout) []*WorkoutResponse {
	out := make([]*WorkoutResponse, len(workouts))
	for i := range workouts {
		out[i] = ToWorkoutResponse(&workouts[i])
	}
	return out
}

type ListWorkoutsParams struct {
	Page     int
	PageSize int
}

func (p *ListWorkoutsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p ListWorkoutsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type SummaryResponse struct {
	Period        string `json:"period"`
	Workouts      int    `json:"workouts"`
	TotalMinutes  int    `json:"total_minutes"`
	TotalCalories int    `json:"total_calories"`
}
