// AngelaMos | 2026
// entity.go

package workout

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Workout is one logged training session. Exercises live inside the row
// as an ordered JSONB array; their order is the order the lifter
// performed them and is preserved end to end.
type Workout struct {
	ID             string          `db:"id"`
	UserID         string          `db:"user_id"`
	Title          string          `db:"title"`
	Notes          string          `db:"notes"`
	WorkoutDate    time.Time       `db:"workout_date"`
	DurationMin    int             `db:"duration_min"`
	CaloriesBurned int             `db:"calories_burned"`
	Exercises      ExerciseEntries `db:"exercises"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// ExerciseEntry is one exercise within a session. ExerciseID references
// the catalog when the client picked from it; free-form entries carry
// only the name.
type ExerciseEntry struct {
	ExerciseID *string `json:"exercise_id,omitempty"`
	Name       string  `json:"name"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	Notes      string  `json:"notes,omitempty"`
}

type ExerciseEntries []ExerciseEntry

func (e ExerciseEntries) Value() (driver.Value, error) {
	if e == nil {
		return json.Marshal(ExerciseEntries{})
	}
	return json.Marshal(e)
}

func (e *ExerciseEntries) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	case nil:
		*e = ExerciseEntries{}
		return nil
	default:
		return fmt.Errorf("scan exercises: unsupported type %T", src)
	}
}

// ProgressPoint is one data point on an exercise's progress chart.
type ProgressPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Sets   int     `json:"sets"`
}
