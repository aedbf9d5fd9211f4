// AngelaMos | 2026
// service_test.go

package workout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/liftingtracker/backend/internal/core"
)

type fakeRepo struct {
	workouts map[string]*Workout

	lastFrom time.Time
	lastTo   time.Time
}

func newFakeRepo(workouts ...*Workout) *fakeRepo {
	r := &fakeRepo{workouts: make(map[string]*Workout)}
	for _, w := range workouts {
		r.workouts[w.ID] = w
	}
	return r
}

func (f *fakeRepo) Create(_ context.Context, w *Workout) error {
	f.workouts[w.ID] = w
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Workout, error) {
	w, ok := f.workouts[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return w, nil
}

func (f *fakeRepo) Update(_ context.Context, w *Workout) error {
	if _, ok := f.workouts[w.ID]; !ok {
		return core.ErrNotFound
	}
	f.workouts[w.ID] = w
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.workouts[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.workouts, id)
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	userID string,
	_ ListWorkoutsParams,
) ([]Workout, int, error) {
	out := []Workout{}
	for _, w := range f.workouts {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListBetween(
	_ context.Context,
	userID string,
	from, to time.Time,
) ([]Workout, error) {
	f.lastFrom, f.lastTo = from, to

	out := []Workout{}
	for _, w := range f.workouts {
		if w.UserID != userID {
			continue
		}
		if w.WorkoutDate.Before(from) || w.WorkoutDate.After(to) {
			continue
		}
		out = append(out, *w)
	}
	// ascending by date, matching the query's ORDER BY
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].WorkoutDate.Before(out[j-1].WorkoutDate); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (f *fakeRepo) Summary(
	_ context.Context,
	userID string,
	from, to time.Time,
) (*SummaryRow, error) {
	row := &SummaryRow{}
	for _, w := range f.workouts {
		if w.UserID != userID || w.WorkoutDate.Before(from) || w.WorkoutDate.After(to) {
			continue
		}
		row.Workouts++
		row.TotalMinutes += w.DurationMin
		row.TotalCalories += w.CaloriesBurned
	}
	return row, nil
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService(repo Repository, now time.Time) *Service {
	s := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return now }
	return s
}

func benchEntry(weight float64, reps int) ExerciseEntry {
	return ExerciseEntry{Name: "Bench Press", Weight: weight, Reps: reps, Sets: 3}
}

func TestGetProgressFiltersAndOrders(t *testing.T) {
	repo := newFakeRepo(
		&Workout{
			ID: "w1", UserID: "u1", WorkoutDate: date("2026-08-10"),
			Exercises: ExerciseEntries{
				benchEntry(100, 5),
				{Name: "Squat", Weight: 140, Reps: 5, Sets: 3},
				benchEntry(102.5, 3),
			},
		},
		&Workout{
			ID: "w2", UserID: "u1", WorkoutDate: date("2026-08-03"),
			Exercises: ExerciseEntries{benchEntry(97.5, 5)},
		},
		&Workout{
			ID: "w3", UserID: "u2", WorkoutDate: date("2026-08-05"),
			Exercises: ExerciseEntries{benchEntry(200, 1)},
		},
	)
	service := newTestService(repo, date("2026-08-15"))

	points, err := service.GetProgress(context.Background(), "u1", "Bench Press", PeriodMonth)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}

	want := []ProgressPoint{
		{Date: "2026-08-03", Weight: 97.5, Reps: 5, Sets: 3},
		{Date: "2026-08-10", Weight: 100, Reps: 5, Sets: 3},
		{Date: "2026-08-10", Weight: 102.5, Reps: 3, Sets: 3},
	}
	if len(points) != len(want) {
		t.Fatalf("points = %d, want %d: %+v", len(points), len(want), points)
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point[%d] = %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestGetProgressNameMatchIsCaseSensitive(t *testing.T) {
	repo := newFakeRepo(
		&Workout{
			ID: "w1", UserID: "u1", WorkoutDate: date("2026-08-10"),
			Exercises: ExerciseEntries{{Name: "bench press", Weight: 100, Reps: 5, Sets: 3}},
		},
	)
	service := newTestService(repo, date("2026-08-15"))

	points, err := service.GetProgress(context.Background(), "u1", "Bench Press", PeriodMonth)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("case-insensitive match leaked through: %+v", points)
	}
}

func TestGetProgressPeriodWindows(t *testing.T) {
	now := date("2026-08-15")

	tests := []struct {
		period   string
		wantFrom time.Time
	}{
		{PeriodWeek, date("2026-08-08")},
		{PeriodMonth, date("2026-07-15")},
		{PeriodYear, date("2025-08-15")},
		{"fortnight", date("2026-07-15")}, // unknown falls back to month
		{"", date("2026-07-15")},
	}

	for _, tt := range tests {
		t.Run("period "+tt.period, func(t *testing.T) {
			repo := newFakeRepo()
			service := newTestService(repo, now)

			if _, err := service.GetProgress(context.Background(), "u1", "Bench Press", tt.period); err != nil {
				t.Fatalf("progress: %v", err)
			}
			if !repo.lastFrom.Equal(tt.wantFrom) {
				t.Errorf("from = %v, want %v", repo.lastFrom, tt.wantFrom)
			}
			if !repo.lastTo.Equal(now) {
				t.Errorf("to = %v, want today", repo.lastTo)
			}
		})
	}
}

func TestGetProgressRequiresExerciseName(t *testing.T) {
	service := newTestService(newFakeRepo(), date("2026-08-15"))

	_, err := service.GetProgress(context.Background(), "u1", "", PeriodWeek)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestDeleteWorkoutOwnership(t *testing.T) {
	repo := newFakeRepo(
		&Workout{ID: "w1", UserID: "owner", WorkoutDate: date("2026-08-10")},
	)
	service := newTestService(repo, date("2026-08-15"))

	err := service.DeleteWorkout(context.Background(), "intruder", "w1")
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
	if _, ok := repo.workouts["w1"]; !ok {
		t.Fatal("workout deleted by non-owner")
	}

	if err := service.DeleteWorkout(context.Background(), "owner", "w1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, ok := repo.workouts["w1"]; ok {
		t.Fatal("workout not deleted")
	}

	// An absent id reads the same as someone else's: forbidden, never
	// not-found, so ids cannot be probed for existence.
	err = service.DeleteWorkout(context.Background(), "owner", "missing")
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
	if errors.Is(err, core.ErrNotFound) {
		t.Fatal("absent workout distinguishable from foreign workout")
	}
}

func TestSaveWorkoutPreservesExerciseOrder(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo, date("2026-08-15"))

	req := SaveWorkoutRequest{
		Title: "Push Day",
		Date:  "2026-08-14",
		Exercises: []ExerciseEntryRequest{
			{Name: "Bench Press", Sets: 3, Reps: 5, Weight: 100},
			{Name: "Overhead Press", Sets: 3, Reps: 8, Weight: 60},
			{Name: "Bench Press", Sets: 1, Reps: 10, Weight: 80},
		},
	}

	saved, err := service.SaveWorkout(context.Background(), "u1", req)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	names := []string{"Bench Press", "Overhead Press", "Bench Press"}
	for i, want := range names {
		if saved.Exercises[i].Name != want {
			t.Errorf("exercise[%d] = %q, want %q", i, saved.Exercises[i].Name, want)
		}
	}
}

func TestUpdateWorkoutDateImmutable(t *testing.T) {
	repo := newFakeRepo(
		&Workout{
			ID: "w1", UserID: "u1", Title: "Push Day",
			WorkoutDate: date("2026-08-10"),
		},
	)
	service := newTestService(repo, date("2026-08-15"))

	_, err := service.UpdateWorkout(context.Background(), "u1", "w1", SaveWorkoutRequest{
		Title: "Push Day (edited)",
		Date:  "2026-08-11",
	})
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
	if repo.workouts["w1"].Title != "Push Day" {
		t.Fatal("rejected update still written")
	}

	// Resubmitting the original date edits everything else.
	updated, err := service.UpdateWorkout(context.Background(), "u1", "w1", SaveWorkoutRequest{
		Title: "Push Day (edited)",
		Date:  "2026-08-10",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Push Day (edited)" {
		t.Fatalf("title = %q", updated.Title)
	}
	if !updated.WorkoutDate.Equal(date("2026-08-10")) {
		t.Fatalf("date changed to %v", updated.WorkoutDate)
	}
}

func TestSaveWorkoutRejectsBadDate(t *testing.T) {
	service := newTestService(newFakeRepo(), date("2026-08-15"))

	_, err := service.SaveWorkout(context.Background(), "u1", SaveWorkoutRequest{
		Title: "Leg Day",
		Date:  "14/08/2026",
	})
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestGetSummary(t *testing.T) {
	repo := newFakeRepo(
		&Workout{
			ID: "w1", UserID: "u1", WorkoutDate: date("2026-08-10"),
			DurationMin: 60, CaloriesBurned: 400,
		},
		&Workout{
			ID: "w2", UserID: "u1", WorkoutDate: date("2026-08-12"),
			DurationMin: 45, CaloriesBurned: 300,
		},
		&Workout{
			ID: "old", UserID: "u1", WorkoutDate: date("2025-01-01"),
			DurationMin: 90, CaloriesBurned: 700,
		},
	)
	service := newTestService(repo, date("2026-08-15"))

	summary, err := service.GetSummary(context.Background(), "u1", PeriodWeek)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Workouts != 2 || summary.TotalMinutes != 105 || summary.TotalCalories != 700 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Period != PeriodWeek {
		t.Fatalf("period = %q", summary.Period)
	}
}
