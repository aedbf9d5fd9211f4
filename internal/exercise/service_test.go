// AngelaMos | 2026
// service_test.go

package exercise

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/liftingtracker/backend/internal/core"
)

type fakeRepo struct {
	byID   map[string]*Exercise
	byName map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:   make(map[string]*Exercise),
		byName: make(map[string]string),
	}
}

func (f *fakeRepo) Create(_ context.Context, e *Exercise) error {
	if _, taken := f.byName[e.Name]; taken {
		return core.ErrDuplicateKey
	}
	f.byID[e.ID] = e
	f.byName[e.Name] = e.ID
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Exercise, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeRepo) Update(_ context.Context, e *Exercise) error {
	old, ok := f.byID[e.ID]
	if !ok {
		return core.ErrNotFound
	}
	if other, taken := f.byName[e.Name]; taken && other != e.ID {
		return core.ErrDuplicateKey
	}
	delete(f.byName, old.Name)
	f.byID[e.ID] = e
	f.byName[e.Name] = e.ID
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	e, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	delete(f.byName, e.Name)
	delete(f.byID, id)
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	params ListExercisesParams,
) ([]Exercise, int, error) {
	out := []Exercise{}
	for _, e := range f.byID {
		if params.Category != "" && e.Category != params.Category {
			continue
		}
		out = append(out, *e)
	}
	return out, len(out), nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateExerciseRejectsDuplicateName(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	req := SaveExerciseRequest{
		Name:        "Bench Press",
		Category:    "strength",
		MuscleGroup: "chest",
		DefaultSets: 3,
		DefaultReps: 5,
	}

	first, err := service.CreateExercise(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated id")
	}

	_, err = service.CreateExercise(context.Background(), req)
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("err = %v, want duplicate", err)
	}
}

func TestUpdateExercise(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.CreateExercise(context.Background(), SaveExerciseRequest{
		Name: "Squat",
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := service.UpdateExercise(context.Background(), created.ID, SaveExerciseRequest{
		Name:        "Back Squat",
		MuscleGroup: "legs",
		DefaultSets: 5,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Back Squat" || updated.DefaultSets != 5 {
		t.Fatalf("updated = %+v", updated)
	}

	_, err = service.UpdateExercise(context.Background(), "missing", SaveExerciseRequest{Name: "x"})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDeleteExerciseFreesName(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.CreateExercise(context.Background(), SaveExerciseRequest{
		Name: "Deadlift",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := service.DeleteExercise(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := service.CreateExercise(context.Background(), SaveExerciseRequest{
		Name: "Deadlift",
	}); err != nil {
		t.Fatalf("recreate after delete: %v", err)
	}
}
