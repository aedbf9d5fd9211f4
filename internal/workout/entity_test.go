// AngelaMos | 2026
// entity_test.go

package workout

import (
	"reflect"
	"testing"
)

func TestExerciseEntriesRoundTrip(t *testing.T) {
	id := "8b9f0c2e-3d41-4f6a-9c07-5f1e2a6b8d90"
	entries := ExerciseEntries{
		{ExerciseID: &id, Name: "Bench Press", Sets: 3, Reps: 8, Weight: 80},
		{Name: "Incline Dumbbell Press", Sets: 3, Reps: 10, Weight: 27.5, Notes: "slow negatives"},
		{Name: "Bench Press", Sets: 2, Reps: 12, Weight: 62.5},
	}

	raw, err := entries.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var decoded ExerciseEntries
	if err := decoded.Scan(raw); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if !reflect.DeepEqual(decoded, entries) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, entries)
	}
}

func TestExerciseEntriesScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want ExerciseEntries
		err  bool
	}{
		{
			name: "string source",
			src:  `[{"name":"Squat","sets":5,"reps":5,"weight":100}]`,
			want: ExerciseEntries{{Name: "Squat", Sets: 5, Reps: 5, Weight: 100}},
		},
		{
			name: "nil column",
			src:  nil,
			want: ExerciseEntries{},
		},
		{
			name: "unsupported type",
			src:  42,
			err:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ExerciseEntries
			err := got.Scan(tt.src)
			if tt.err {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExerciseEntriesValueNil(t *testing.T) {
	var entries ExerciseEntries

	raw, err := entries.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	b, ok := raw.([]byte)
	if !ok {
		t.Fatalf("Value returned %T, want []byte", raw)
	}
	if string(b) != "[]" {
		t.Errorf("nil entries serialized as %q, want %q", b, "[]")
	}
}
