// AngelaMos | 2026
// repository.go

package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/liftingtracker/backend/internal/core"
)

const workoutColumns = `id, user_id, title, notes, workout_date, duration_min,
	       calories_burned, exercises, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, workout *Workout) error
	GetByID(ctx context.Context, id string) (*Workout, error)
	Update(ctx context.Context, workout *Workout) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, userID string, params ListWorkoutsParams) ([]Workout, int, error)
	ListBetween(ctx context.Context, userID string, from, to time.Time) ([]Workout, error)
	Summary(ctx context.Context, userID string, from, to time.Time) (*SummaryRow, error)
}

// SummaryRow holds the dashboard aggregates for one date window.
type SummaryRow struct {
	Workouts      int `db:"workouts"`
	TotalMinutes  int `db:"total_minutes"`
	TotalCalories int `db:"total_calories"`
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, workout *Workout) error {
	query := `
		INSERT INTO workouts (
			id, user_id, title, notes, workout_date, duration_min,
			calories_burned, exercises
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, workout, query,
		workout.ID,
		workout.UserID,
		workout.Title,
		workout.Notes,
		workout.WorkoutDate,
		workout.DurationMin,
		workout.CaloriesBurned,
		workout.Exercises,
	)
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Workout, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM workouts
		WHERE id = $1`, workoutColumns)

	var workout Workout
	err := r.db.GetContext(ctx, &workout, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get workout: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}

	return &workout, nil
}

func (r *repository) Update(ctx context.Context, workout *Workout) error {
	// workout_date is set once at insert and never updated.
	query := `
		UPDATE workouts
		SET title = $2,
		    notes = $3,
		    duration_min = $4,
		    calories_burned = $5,
		    exercises = $6,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		workout.ID,
		workout.Title,
		workout.Notes,
		workout.DurationMin,
		workout.CaloriesBurned,
		workout.Exercises,
	)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}

	return expectRow(result, "update workout")
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	return expectRow(result, "delete workout")
}

func (r *repository) List(
	ctx context.Context,
	userID string,
	params ListWorkoutsParams,
) ([]Workout, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1`, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count workouts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM workouts
		WHERE user_id = $1
		ORDER BY workout_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`, workoutColumns)

	workouts := []Workout{}
	err = r.db.SelectContext(ctx, &workouts, query,
		userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list workouts: %w", err)
	}

	return workouts, total, nil
}

func (r *repository) ListBetween(
	ctx context.Context,
	userID string,
	from, to time.Time,
) ([]Workout, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM workouts
		WHERE user_id = $1
		  AND workout_date BETWEEN $2 AND $3
		ORDER BY workout_date ASC, created_at ASC`, workoutColumns)

	workouts := []Workout{}
	err := r.db.SelectContext(ctx, &workouts, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list workouts between: %w", err)
	}

	return workouts, nil
}

func (r *repository) Summary(
	ctx context.Context,
	userID string,
	from, to time.Time,
) (*SummaryRow, error) {
	query := `
		SELECT COUNT(*)                          AS workouts,
		       COALESCE(SUM(duration_min), 0)    AS total_minutes,
		       COALESCE(SUM(calories_burned), 0) AS total_calories
		FROM workouts
		WHERE user_id = $1
		  AND workout_date BETWEEN $2 AND $3`

	var row SummaryRow
	if err := r.db.GetContext(ctx, &row, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("workout summary: %w", err)
	}

	return &row, nil
}

func expectRow(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
