// AngelaMos | 2026
// draft_test.go

package registration

import (
	"testing"
)

func validAccountDraft() *Draft {
	d := NewDraft()
	d.Email = "lifter@example.com"
	d.Password = "hunter2hunter2"
	d.ConfirmPassword = "hunter2hunter2"
	d.TermsAccepted = true
	return d
}

func TestValidateStepAccount(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		want   string
	}{
		{
			name:   "complete step passes",
			mutate: func(d *Draft) {},
			want:   "",
		},
		{
			name:   "missing email",
			mutate: func(d *Draft) { d.Email = "" },
			want:   "Email is required",
		},
		{
			name:   "malformed email",
			mutate: func(d *Draft) { d.Email = "not-an-email" },
			want:   "Please enter a valid email address",
		},
		{
			name: "missing password",
			mutate: func(d *Draft) {
				d.Password = ""
				d.ConfirmPassword = ""
			},
			want: "Password is required",
		},
		{
			name: "short password",
			mutate: func(d *Draft) {
				d.Password = "short"
				d.ConfirmPassword = "short"
			},
			want: "Password must be at least 8 characters",
		},
		{
			name:   "mismatched confirmation",
			mutate: func(d *Draft) { d.ConfirmPassword = "different8" },
			want:   "Passwords do not match",
		},
		{
			name:   "terms not accepted",
			mutate: func(d *Draft) { d.TermsAccepted = false },
			want:   "You must accept the terms and conditions",
		},
		{
			name: "first failing rule wins",
			mutate: func(d *Draft) {
				d.Email = ""
				d.Password = ""
				d.TermsAccepted = false
			},
			want: "Email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validAccountDraft()
			tt.mutate(d)
			if got := d.ValidateStep(StepAccount); got != tt.want {
				t.Errorf("ValidateStep = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateStepPersonal(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		last     string
		username string
		want     string
	}{
		{"complete step passes", "Jane", "Doe", "jane_doe", ""},
		{"missing first name", "", "Doe", "jane_doe", "First name is required"},
		{"missing last name", "Jane", "", "jane_doe", "Last name is required"},
		{"missing username", "Jane", "Doe", "", "Username is required"},
		{
			"username too short", "Jane", "Doe", "jd",
			"Username must be 3-20 characters, letters, numbers, and underscores only",
		},
		{
			"username too long", "Jane", "Doe", "a234567890123456789012",
			"Username must be 3-20 characters, letters, numbers, and underscores only",
		},
		{
			"username with invalid characters", "Jane", "Doe", "jane-doe",
			"Username must be 3-20 characters, letters, numbers, and underscores only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			d.FirstName = tt.first
			d.LastName = tt.last
			d.Username = tt.username
			if got := d.ValidateStep(StepPersonal); got != tt.want {
				t.Errorf("ValidateStep = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateStepPhysicalAlwaysPasses(t *testing.T) {
	d := NewDraft()
	if got := d.ValidateStep(StepPhysical); got != "" {
		t.Errorf("ValidateStep = %q, want pass", got)
	}
}

func TestValidateStepGoals(t *testing.T) {
	tests := []struct {
		name                string
		protein, carbs, fat string
		want                string
	}{
		{"defaults total 100", "30", "40", "30", ""},
		{"exact split passes", "40", "40", "20", ""},
		{"under 100", "30", "30", "30", "Macro percentages must total 100%"},
		{"over 100", "40", "40", "30", "Macro percentages must total 100%"},
		{"non-numeric counts as zero", "abc", "60", "40", ""},
		{"non-numeric breaking the total", "abc", "40", "30", "Macro percentages must total 100%"},
		{"whitespace tolerated", " 30 ", "40", "30", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			d.ProteinPercentage = tt.protein
			d.CarbsPercentage = tt.carbs
			d.FatPercentage = tt.fat
			if got := d.ValidateStep(StepGoals); got != tt.want {
				t.Errorf("ValidateStep = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()

	if d.CurrentStep != StepAccount {
		t.Errorf("CurrentStep = %d, want %d", d.CurrentStep, StepAccount)
	}
	if d.PreferredUnits != "imperial" {
		t.Errorf("PreferredUnits = %q, want imperial", d.PreferredUnits)
	}
	if total := d.macroTotal(); total != 100 {
		t.Errorf("default macro total = %d, want 100", total)
	}
}

func TestHeightCmConversion(t *testing.T) {
	d := NewDraft()
	d.HeightFeet = "5"
	d.HeightInches = "10"

	got := d.heightCm()
	if got < 177.7 || got > 177.9 {
		t.Errorf("heightCm = %v, want ~177.8", got)
	}

	d.HeightCm = "180"
	if got := d.heightCm(); got != 180 {
		t.Errorf("heightCm = %v, want metric field to win", got)
	}
}
