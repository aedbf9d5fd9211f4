// AngelaMos | 2026
// entity.go

package exercise

import (
	"time"
)

// Exercise is a catalog entry curated by admins. Names are unique so
// progress charts can key on them.
type Exercise struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Instructions  string    `db:"instructions"`
	Category      string    `db:"category"`
	MuscleGroup   string    `db:"muscle_group"`
	DefaultSets   int       `db:"default_sets"`
	DefaultReps   int       `db:"default_reps"`
	DefaultWeight float64   `db:"default_weight"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
