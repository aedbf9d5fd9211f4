// AngelaMos | 2026
// dto.go

package registration

// StepRequest carries the fields submitted with a wizard action. Only
// fields present in the payload overwrite the stored draft, matching
// form semantics where each step posts its own inputs.
type StepRequest struct {
	Email           *string `json:"email,omitempty"`
	Password        *string `json:"password,omitempty"`
	ConfirmPassword *string `json:"confirm_password,omitempty"`
	TermsAccepted   *bool   `json:"terms_accepted,omitempty"`

	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`

	DateOfBirth       *string `json:"date_of_birth,omitempty"`
	Gender            *string `json:"gender,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	HeightFeet        *string `json:"height_feet,omitempty"`
	HeightInches      *string `json:"height_inches,omitempty"`
	HeightCm          *string `json:"height_cm,omitempty"`
	CurrentWeight     *string `json:"current_weight,omitempty"`
	TargetWeight      *string `json:"target_weight,omitempty"`
	BodyFatPercentage *string `json:"body_fat_percentage,omitempty"`
	PreferredUnits    *string `json:"preferred_units,omitempty"`

	FitnessLevel        *string   `json:"fitness_level,omitempty"`
	YearsTraining       *string   `json:"years_training,omitempty"`
	PrimaryGoal         *string   `json:"primary_goal,omitempty"`
	WorkoutFrequency    *string   `json:"workout_frequency,omitempty"`
	ActivityLevel       *string   `json:"activity_level,omitempty"`
	ProteinPercentage   *string   `json:"protein_percentage,omitempty"`
	CarbsPercentage     *string   `json:"carbs_percentage,omitempty"`
	FatPercentage       *string   `json:"fat_percentage,omitempty"`
	DietaryRestrictions *[]string `json:"dietary_restrictions,omitempty"`
	Allergies           *[]string `json:"allergies,omitempty"`
}

func (r *StepRequest) applyTo(d *Draft) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&d.Email, r.Email)
	setString(&d.Password, r.Password)
	setString(&d.ConfirmPassword, r.ConfirmPassword)
	if r.TermsAccepted != nil {
		d.TermsAccepted = *r.TermsAccepted
	}

	setString(&d.FirstName, r.FirstName)
	setString(&d.LastName, r.LastName)
	setString(&d.Username, r.Username)

	setString(&d.DateOfBirth, r.DateOfBirth)
	setString(&d.Gender, r.Gender)
	setString(&d.Bio, r.Bio)
	setString(&d.HeightFeet, r.HeightFeet)
	setString(&d.HeightInches, r.HeightInches)
	setString(&d.HeightCm, r.HeightCm)
	setString(&d.CurrentWeight, r.CurrentWeight)
	setString(&d.TargetWeight, r.TargetWeight)
	setString(&d.BodyFatPercentage, r.BodyFatPercentage)
	setString(&d.PreferredUnits, r.PreferredUnits)

	setString(&d.FitnessLevel, r.FitnessLevel)
	setString(&d.YearsTraining, r.YearsTraining)
	setString(&d.PrimaryGoal, r.PrimaryGoal)
	setString(&d.WorkoutFrequency, r.WorkoutFrequency)
	setString(&d.ActivityLevel, r.ActivityLevel)
	setString(&d.ProteinPercentage, r.ProteinPercentage)
	setString(&d.CarbsPercentage, r.CarbsPercentage)
	setString(&d.FatPercentage, r.FatPercentage)
	if r.DietaryRestrictions != nil {
		d.DietaryRestrictions = *r.DietaryRestrictions
	}
	if r.Allergies != nil {
		d.Allergies = *r.Allergies
	}
}

// DraftState is the client-visible draft. Credentials are held
// server-side only.
type DraftState struct {
	CurrentStep   int  `json:"current_step"`
	TotalSteps    int  `json:"total_steps"`
	TermsAccepted bool `json:"terms_accepted"`

	Email     string `json:"email"`
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

func ToDraftState(d *Draft) *DraftState {
	return &DraftState{
		CurrentStep:         d.CurrentStep,
		TotalSteps:          TotalSteps,
		TermsAccepted:       d.TermsAccepted,
		Email:               d.Email,
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		Username:            d.Username,
		DateOfBirth:         d.DateOfBirth,
		Gender:              d.Gender,
		Bio:                 d.Bio,
		HeightFeet:          d.HeightFeet,
		HeightInches:        d.HeightInches,
		HeightCm:            d.HeightCm,
		CurrentWeight:       d.CurrentWeight,
		TargetWeight:        d.TargetWeight,
		BodyFatPercentage:   d.BodyFatPercentage,
		PreferredUnits:      d.PreferredUnits,
		FitnessLevel:        d.FitnessLevel,
		YearsTraining:       d.YearsTraining,
		PrimaryGoal:         d.PrimaryGoal,
		WorkoutFrequency:    d.WorkoutFrequency,
		ActivityLevel:       d.ActivityLevel,
		ProteinPercentage:   d.ProteinPercentage,
		CarbsPercentage:     d.CarbsPercentage,
		FatPercentage:       d.FatPercentage,
		DietaryRestrictions: d.DietaryRestrictions,
		Allergies:           d.Allergies,
	}
}

type StartResponse struct {
	Draft     *DraftState `json:"draft"`
	CSRFToken string      `json:"csrf_token"`
}
