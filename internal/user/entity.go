// AngelaMos | 2026
// entity.go

package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/liftingtracker/backend/internal/billing"
)

type User struct {
	ID                    string     `db:"id"`
	Email                 string     `db:"email"`
	Username              string     `db:"username"`
	PasswordHash          string     `db:"password_hash"`
	FirstName             string     `db:"first_name"`
	LastName              string     `db:"last_name"`
	DisplayName           string     `db:"display_name"`
	Bio                   string     `db:"bio"`
	Role                  string     `db:"role"`
	Profile               Profile    `db:"profile"`
	BillingCustomerID     *string    `db:"billing_customer_id"`
	BillingSubscriptionID *string    `db:"billing_subscription_id"`
	SubscriptionStatus    string     `db:"subscription_status"`
	TokenVersion          int        `db:"token_version"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
	DeletedAt             *time.Time `db:"deleted_at"`
}

// Profile is the flat map of optional fitness attributes collected by
// the registration wizard and editable from settings. Stored as a single
// JSONB column; absent fields stay absent.
type Profile struct {
	DateOfBirth         string   `json:"date_of_birth,omitempty"`
	Gender              string   `json:"gender,omitempty"`
	HeightCm            float64  `json:"height_cm,omitempty"`
	CurrentWeight       float64  `json:"current_weight,omitempty"`
	TargetWeight        float64  `json:"target_weight,omitempty"`
	BodyFatPercentage   float64  `json:"body_fat_percentage,omitempty"`
	PreferredUnits      string   `json:"preferred_units,omitempty"`
	FitnessLevel        string   `json:"fitness_level,omitempty"`
	YearsTraining       int      `json:"years_training,omitempty"`
	PrimaryGoal         string   `json:"primary_goal,omitempty"`
	WorkoutFrequency    int      `json:"workout_frequency,omitempty"`
	ActivityLevel       float64  `json:"activity_level,omitempty"`
	ProteinPercentage   int      `json:"protein_percentage,omitempty"`
	CarbsPercentage     int      `json:"carbs_percentage,omitempty"`
	FatPercentage       int      `json:"fat_percentage,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	Allergies           []string `json:"allergies,omitempty"`
}

func (p Profile) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Profile) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = Profile{}
		return nil
	default:
		return fmt.Errorf("scan profile: unsupported type %T", src)
	}
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasActiveSubscription is a read of the locally stored status. It can
// lag the provider's authoritative state until the next subscription
// call or webhook event.
func (u *User) HasActiveSubscription() bool {
	return billing.IsActiveStatus(u.SubscriptionStatus)
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
