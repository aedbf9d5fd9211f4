// AngelaMos | 2026
// dto.go

package exercise

import (
	"time"
)

type SaveExerciseRequest struct {
	Name          string  `json:"name" validate:"required,max=120"`
	Instructions  string  `json:"instructions" validate:"max=5000"`
	Category      string  `json:"category" validate:"max=60"`
	MuscleGroup   string  `json:"muscle_group" validate:"max=60"`
	DefaultSets   int     `json:"default_sets" validate:"min=0"`
	DefaultReps   int     `json:"default_reps" validate:"min=0"`
	DefaultWeight float64 `json:"default_weight" validate:"min=0"`
}

type ExerciseResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Instructions  string    `json:"instructions,omitempty"`
	Category      string    `json:"category,omitempty"`
	MuscleGroup   string    `json:"muscle_group,omitempty"`
	DefaultSets   int       `json:"default_sets"`
	DefaultReps   int       `json:"default_reps"`
	DefaultWeight float64   `json:"default_weight"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToExerciseResponse(e *Exercise) *ExerciseResponse {
	return &ExerciseResponse{
		ID:            e.ID,
		Name:          e.Name,
		Instructions:  e.Instructions,
		Category:      e.Category,
		MuscleGroup:   e.MuscleGroup,
		DefaultSets:   e.DefaultSets,
		DefaultReps:   e.DefaultReps,
		DefaultWeight: e.DefaultWeight,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToExerciseResponseList(exercises []Exercise) []*ExerciseResponse {
	out := make([]*ExerciseResponse, len(exercises))
	for i := range exercises {
		out[i] = ToExerciseResponse(&exercises[i])
	}
	return out
}

type ListExercisesParams struct {
	Page        int
	PageSize    int
	Category    string
	MuscleGroup string
	Search      string
}

func (p *ListExercisesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 50
	}
}

func (p ListExercisesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
