// AngelaMos | 2026
// service.go

package exercise

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateExercise(
	ctx context.Context,
	req SaveExerciseRequest,
) (*Exercise, error) {
	exercise := &Exercise{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Instructions:  req.Instructions,
		Category:      req.Category,
		MuscleGroup:   req.MuscleGroup,
		DefaultSets:   req.DefaultSets,
		DefaultReps:   req.DefaultReps,
		DefaultWeight: req.DefaultWeight,
	}

	if err := s.repo.Create(ctx, exercise); err != nil {
		return nil, err
	}

	s.logger.Info("exercise created",
		slog.String("exercise_id", exercise.ID),
		slog.String("name", exercise.Name),
	)

	return exercise, nil
}

func (s *Service) GetExercise(ctx context.Context, id string) (*Exercise, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateExercise(
	ctx context.Context,
	id string,
	req SaveExerciseRequest,
) (*Exercise, error) {
	exercise, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exercise.Name = req.Name
	exercise.Instructions = req.Instructions
	exercise.Category = req.Category
	exercise.MuscleGroup = req.MuscleGroup
	exercise.DefaultSets = req.DefaultSets
	exercise.DefaultReps = req.DefaultReps
	exercise.DefaultWeight = req.DefaultWeight

	if err := s.repo.Update(ctx, exercise); err != nil {
		return nil, err
	}

	return exercise, nil
}

func (s *Service) DeleteExercise(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("exercise deleted", slog.String("exercise_id", id))

	return nil
}

func (s *Service) ListExercises(
	ctx context.Context,
	params ListExercisesParams,
) ([]Exercise, int, error) {
	params.Normalize()
	return s.repo.List(ctx, params)
}
