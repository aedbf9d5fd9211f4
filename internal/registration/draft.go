// AngelaMos | 2026
// draft.go

package registration

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
)

const (
	StepAccount  = 1
	StepPersonal = 2
	StepPhysical = 3
	StepGoals    = 4

	TotalSteps = 4
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// Draft is the in-progress registration state, held server-side and
// advanced one validated step at a time. Field values are kept as
// submitted strings until completion so partially filled numeric inputs
// survive round trips.
type Draft struct {
	CurrentStep int `json:"current_step"`

	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	TermsAccepted   bool   `json:"terms_accepted"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`

	DateOfBirth       string `json:"date_of_birth"`
	Gender            string `json:"gender"`
	Bio               string `json:"bio"`
	HeightFeet        string `json:"height_feet"`
	HeightInches      string `json:"height_inches"`
	HeightCm          string `json:"height_cm"`
	CurrentWeight     string `json:"current_weight"`
	TargetWeight      string `json:"target_weight"`
	BodyFatPercentage string `json:"body_fat_percentage"`
	PreferredUnits    string `json:"preferred_units"`

	FitnessLevel        string   `json:"fitness_level"`
	YearsTraining       string   `json:"years_training"`
	PrimaryGoal         string   `json:"primary_goal"`
	WorkoutFrequency    string   `json:"workout_frequency"`
	ActivityLevel       string   `json:"activity_level"`
	ProteinPercentage   string   `json:"protein_percentage"`
	CarbsPercentage     string   `json:"carbs_percentage"`
	FatPercentage       string   `json:"fat_percentage"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergies           []string `json:"allergies"`
}

func NewDraft() *Draft {
	return &Draft{
		CurrentStep:       StepAccount,
		PreferredUnits:    "imperial",
		FitnessLevel:      "beginner",
		PrimaryGoal:       "build_muscle",
		WorkoutFrequency:  "3",
		ActivityLevel:     "1.4",
		ProteinPercentage: "30",
		CarbsPercentage:   "40",
		FatPercentage:     "30",
	}
}

// ValidateStep returns the first failing rule's message for the given
// step, or "" when the step is complete. Steps without rules always
// pass.
func (d *Draft) ValidateStep(step int) string {
	switch step {
	case StepAccount:
		if d.Email == "" {
			return "Email is required"
		}
		if !isEmail(d.Email) {
			return "Please enter a valid email address"
		}
		if d.Password == "" {
			return "Password is required"
		}
		if len(d.Password) < 8 {
			return "Password must be at least 8 characters"
		}
		if d.Password != d.ConfirmPassword {
			return "Passwords do not match"
		}
		if !d.TermsAccepted {
			return "You must accept the terms and conditions"
		}
	case StepPersonal:
		if strings.TrimSpace(d.FirstName) == "" {
			return "First name is required"
		}
		if strings.TrimSpace(d.LastName) == "" {
			return "Last name is required"
		}
		if d.Username == "" {
			return "Username is required"
		}
		if !usernamePattern.MatchString(d.Username) {
			return "Username must be 3-20 characters, letters, numbers, and underscores only"
		}
	case StepGoals:
		if d.macroTotal() != 100 {
			return "Macro percentages must total 100%"
		}
	}

	return ""
}

func (d *Draft) macroTotal() int {
	return atoiOrZero(d.ProteinPercentage) +
		atoiOrZero(d.CarbsPercentage) +
		atoiOrZero(d.FatPercentage)
}

// atoiOrZero treats anything non-numeric as zero, so a garbage macro
// value fails the 100% rule instead of erroring.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
