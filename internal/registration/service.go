// AngelaMos | 2026
// service.go

package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/liftingtracker/backend/internal/auth"
	"github.com/liftingtracker/backend/internal/core"
	"github.com/liftingtracker/backend/internal/user"
)

// DraftStore persists drafts between wizard requests. Implemented by
// the Redis-backed Store.
type DraftStore interface {
	Get(ctx context.Context, sessionID string) (*Draft, error)
	Save(ctx context.Context, sessionID string, draft *Draft) error
	Delete(ctx context.Context, sessionID string) error
}

// AccountCreator is the slice of the user service the wizard needs.
type AccountCreator interface {
	CreateAccount(ctx context.Context, params user.CreateAccountParams) (*user.User, error)
}

// SessionCreator logs the new account in once registration completes.
type SessionCreator interface {
	CreateSession(
		ctx context.Context,
		userID, userAgent, ipAddress string,
	) (*auth.AuthResponse, error)
}

type Service struct {
	store    DraftStore
	accounts AccountCreator
	sessions SessionCreator
	logger   *slog.Logger
}

func NewService(
	store DraftStore,
	accounts AccountCreator,
	sessions SessionCreator,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		accounts: accounts,
		sessions: sessions,
		logger:   logger,
	}
}

// StartOrResume returns the session's existing draft, or seeds a fresh
// one at step 1.
func (s *Service) StartOrResume(ctx context.Context, sessionID string) (*Draft, error) {
	draft, err := s.store.Get(ctx, sessionID)
	if err == nil {
		return draft, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	draft = NewDraft()
	if err := s.store.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}

	return draft, nil
}

func (s *Service) Get(ctx context.Context, sessionID string) (*Draft, error) {
	return s.store.Get(ctx, sessionID)
}

// Next merges the submitted fields and advances one step if the current
// step validates. The merged fields are kept either way so the user
// never retypes them.
func (s *Service) Next(
	ctx context.Context,
	sessionID string,
	req *StepRequest,
) (*Draft, error) {
	draft, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	req.applyTo(draft)

	if msg := draft.ValidateStep(draft.CurrentStep); msg != "" {
		if err := s.store.Save(ctx, sessionID, draft); err != nil {
			return nil, err
		}
		return nil, core.BadRequestError(msg)
	}

	if draft.CurrentStep < TotalSteps {
		draft.CurrentStep++
	}
	if err := s.store.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}

	return draft, nil
}

// Prev steps back without validating; step 1 is the floor.
func (s *Service) Prev(
	ctx context.Context,
	sessionID string,
	req *StepRequest,
) (*Draft, error) {
	draft, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	req.applyTo(draft)

	if draft.CurrentStep > StepAccount {
		draft.CurrentStep--
	}
	if err := s.store.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}

	return draft, nil
}

// Complete validates the final step, creates the account, and logs it
// in. On failure the draft survives at its current step so the user can
// correct and resubmit.
func (s *Service) Complete(
	ctx context.Context,
	sessionID string,
	req *StepRequest,
	userAgent, ipAddress string,
) (*auth.AuthResponse, error) {
	draft, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	req.applyTo(draft)

	// Completion is only reachable from the last step; earlier steps
	// have not all been validated yet.
	if draft.CurrentStep != TotalSteps {
		if err := s.store.Save(ctx, sessionID, draft); err != nil {
			return nil, err
		}
		return nil, core.BadRequestError("Please complete all registration steps")
	}

	if msg := draft.ValidateStep(TotalSteps); msg != "" {
		if err := s.store.Save(ctx, sessionID, draft); err != nil {
			return nil, err
		}
		return nil, core.BadRequestError(msg)
	}

	created, err := s.accounts.CreateAccount(ctx, draft.accountParams())
	if err != nil {
		if saveErr := s.store.Save(ctx, sessionID, draft); saveErr != nil {
			s.logger.Error("draft save after failed completion",
				slog.String("error", saveErr.Error()),
			)
		}
		return nil, err
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("draft cleanup failed",
			slog.String("user_id", created.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("registration completed",
		slog.String("user_id", created.ID),
		slog.String("username", created.Username),
	)

	session, err := s.sessions.CreateSession(ctx, created.ID, userAgent, ipAddress)
	if err != nil {
		// Account exists; the user can still log in normally.
		return nil, fmt.Errorf("open session for new account: %w", err)
	}

	return session, nil
}

// Restart discards the draft and seeds a fresh one.
func (s *Service) Restart(ctx context.Context, sessionID string) (*Draft, error) {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return nil, err
	}

	draft := NewDraft()
	if err := s.store.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}

	return draft, nil
}

func (d *Draft) accountParams() user.CreateAccountParams {
	return user.CreateAccountParams{
		Email:     d.Email,
		Password:  d.Password,
		Username:  d.Username,
		FirstName: strings.TrimSpace(d.FirstName),
		LastName:  strings.TrimSpace(d.LastName),
		Bio:       d.Bio,
		Profile: user.Profile{
			DateOfBirth:         d.DateOfBirth,
			Gender:              d.Gender,
			HeightCm:            d.heightCm(),
			CurrentWeight:       floatOrZero(d.CurrentWeight),
			TargetWeight:        floatOrZero(d.TargetWeight),
			BodyFatPercentage:   floatOrZero(d.BodyFatPercentage),
			PreferredUnits:      d.PreferredUnits,
			FitnessLevel:        d.FitnessLevel,
			YearsTraining:       atoiOrZero(d.YearsTraining),
			PrimaryGoal:         d.PrimaryGoal,
			WorkoutFrequency:    atoiOrZero(d.WorkoutFrequency),
			ActivityLevel:       floatOrZero(d.ActivityLevel),
			ProteinPercentage:   atoiOrZero(d.ProteinPercentage),
			CarbsPercentage:     atoiOrZero(d.CarbsPercentage),
			FatPercentage:       atoiOrZero(d.FatPercentage),
			DietaryRestrictions: d.DietaryRestrictions,
			Allergies:           d.Allergies,
		},
	}
}

// heightCm favors the metric input and falls back to converting
// feet/inches when only the imperial fields were filled.
func (d *Draft) heightCm() float64 {
	if cm := floatOrZero(d.HeightCm); cm > 0 {
		return cm
	}

	feet := floatOrZero(d.HeightFeet)
	inches := floatOrZero(d.HeightInches)
	if feet == 0 && inches == 0 {
		return 0
	}

	return (feet*12 + inches) * 2.54
}

func floatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
