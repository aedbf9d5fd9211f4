// AngelaMos | 2026
// service.go

package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/liftingtracker/backend/internal/core"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) SaveWorkout(
	ctx context.Context,
	userID string,
	req SaveWorkoutRequest,
) (*Workout, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, core.BadRequestError("invalid workout date")
	}

	workout := &Workout{
		ID:             uuid.NewString(),
		UserID:         userID,
		Title:          req.Title,
		Notes:          req.Notes,
		WorkoutDate:    date,
		DurationMin:    req.Duration,
		CaloriesBurned: req.Calories,
		Exercises:      toEntries(req.Exercises),
	}

	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, err
	}

	s.logger.Info("workout saved",
		slog.String("workout_id", workout.ID),
		slog.String("user_id", userID),
		slog.Int("exercises", len(workout.Exercises)),
	)

	return workout, nil
}

func (s *Service) GetWorkout(ctx context.Context, userID, id string) (*Workout, error) {
	workout, err := s.ownedWorkout(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return workout, nil
}

func (s *Service) UpdateWorkout(
	ctx context.Context,
	userID, id string,
	req SaveWorkoutRequest,
) (*Workout, error) {
	workout, err := s.ownedWorkout(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if _, err := time.Parse(time.DateOnly, req.Date); err != nil {
		return nil, core.BadRequestError("invalid workout date")
	}

	// The date fixes which progress window the session falls in; it is
	// set once at creation.
	if req.Date != workout.WorkoutDate.Format(time.DateOnly) {
		return nil, core.BadRequestError("workout date cannot be changed")
	}

	workout.Title = req.Title
	workout.Notes = req.Notes
	workout.DurationMin = req.Duration
	workout.CaloriesBurned = req.Calories
	workout.Exercises = toEntries(req.Exercises)

	if err := s.repo.Update(ctx, workout); err != nil {
		return nil, err
	}

	return workout, nil
}

func (s *Service) DeleteWorkout(ctx context.Context, userID, id string) error {
	if _, err := s.ownedWorkout(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("workout deleted",
		slog.String("workout_id", id),
		slog.String("user_id", userID),
	)

	return nil
}

func (s *Service) ListWorkouts(
	ctx context.Context,
	userID string,
	params ListWorkoutsParams,
) ([]Workout, int, error) {
	params.Normalize()
	return s.repo.List(ctx, userID, params)
}

// GetProgress returns one point per matching exercise entry within the
// trailing window, oldest workout first. The name match is exact and
// case-sensitive; entries within a workout keep their logged order.
func (s *Service) GetProgress(
	ctx context.Context,
	userID, exerciseName, period string,
) ([]ProgressPoint, error) {
	if exerciseName == "" {
		return nil, core.BadRequestError("exercise name is required")
	}

	from, to := s.periodWindow(period)

	workouts, err := s.repo.ListBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	points := []ProgressPoint{}
	for i := range workouts {
		date := workouts[i].WorkoutDate.Format(time.DateOnly)
		for _, entry := range workouts[i].Exercises {
			if entry.Name != exerciseName {
				continue
			}
			points = append(points, ProgressPoint{
				Date:   date,
				Weight: entry.Weight,
				Reps:   entry.Reps,
				Sets:   entry.Sets,
			})
		}
	}

	return points, nil
}

func (s *Service) GetSummary(
	ctx context.Context,
	userID, period string,
) (*SummaryResponse, error) {
	from, to := s.periodWindow(period)

	row, err := s.repo.Summary(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		Period:        normalizePeriod(period),
		Workouts:      row.Workouts,
		TotalMinutes:  row.TotalMinutes,
		TotalCalories: row.TotalCalories,
	}, nil
}

// periodWindow is the trailing window ending today, inclusive on both
// ends. Unknown periods fall back to a month.
func (s *Service) periodWindow(period string) (time.Time, time.Time) {
	to := s.now().Truncate(24 * time.Hour)

	var from time.Time
	switch period {
	case PeriodWeek:
		from = to.AddDate(0, 0, -7)
	case PeriodYear:
		from = to.AddDate(-1, 0, 0)
	default:
		from = to.AddDate(0, -1, 0)
	}

	return from, to
}

func normalizePeriod(period string) string {
	switch period {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return period
	default:
		return PeriodMonth
	}
}

// ownedWorkout loads the row and enforces ownership. Absent and
// foreign workouts are both reported as forbidden so a caller cannot
// tell whether someone else's id exists.
func (s *Service) ownedWorkout(ctx context.Context, userID, id string) (*Workout, error) {
	workout, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ForbiddenError("you do not own this workout")
		}
		return nil, fmt.Errorf("load workout: %w", err)
	}

	if workout.UserID != userID {
		return nil, core.ForbiddenError("you do not own this workout")
	}

	return workout, nil
}

func toEntries(reqs []ExerciseEntryRequest) ExerciseEntries {
	entries := make(ExerciseEntries, len(reqs))
	for i, req := range reqs {
		entries[i] = ExerciseEntry{
			ExerciseID: req.ExerciseID,
			Name:       req.Name,
			Sets:       req.Sets,
			Reps:       req.Reps,
			Weight:     req.Weight,
			Notes:      req.Notes,
		}
	}
	return entries
}
