// AngelaMos | 2026
// dto_test.go

package workout

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

// Saving coerces types but imposes no business rules: negative
// durations, calories, and set counts pass request validation.
func TestSaveWorkoutRequestAllowsNegativeNumbers(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())

	req := SaveWorkoutRequest{
		Title:    "Recovery Day",
		Date:     "2026-08-14",
		Duration: -30,
		Calories: -100,
		Exercises: []ExerciseEntryRequest{
			{Name: "Bench Press", Sets: -1, Reps: -5, Weight: -20},
		},
	}

	if err := v.Struct(req); err != nil {
		t.Fatalf("negative numbers rejected: %v", err)
	}
}

func TestSaveWorkoutRequestStillRequiresTitleAndDate(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.Struct(SaveWorkoutRequest{Date: "2026-08-14"}); err == nil {
		t.Fatal("missing title accepted")
	}
	if err := v.Struct(SaveWorkoutRequest{Title: "Leg Day", Date: "14/08/2026"}); err == nil {
		t.Fatal("malformed date accepted")
	}
}
