// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/liftingtracker/backend/internal/auth"
	"github.com/liftingtracker/backend/internal/billing"
	"github.com/liftingtracker/backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateAccountParams struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
	Bio       string
	Profile   Profile
}

// CreateAccount creates the user record with its full profile in one
// write. Callers are expected to have validated the fields already; the
// registration wizard is the only producer.
func (s *Service) CreateAccount(
	ctx context.Context,
	params CreateAccountParams,
) (*User, error) {
	passwordHash, err := core.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(params.Email),
		Username:     params.Username,
		PasswordHash: passwordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		DisplayName:  strings.TrimSpace(params.FirstName + " " + params.LastName),
		Bio:          params.Bio,
		Role:         RoleUser,
		Profile:      params.Profile,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateUserRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.FirstName != nil || req.LastName != nil {
		user.DisplayName = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Profile != nil {
		user.Profile = *req.Profile
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdateUserRole(
	ctx context.Context,
	id, role string,
) (*User, error) {
	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, strings.ToLower(email))
}

// HasActiveSubscription gates subscriber-only routes. Local judgement
// only; no provider round trip.
func (s *Service) HasActiveSubscription(
	ctx context.Context,
	userID string,
) (bool, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	return user.HasActiveSubscription(), nil
}

// billing.UserStore implementation.

func (s *Service) GetBillingState(
	ctx context.Context,
	userID string,
) (*billing.AccountState, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := &billing.AccountState{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Status:      user.SubscriptionStatus,
	}
	if user.BillingCustomerID != nil {
		state.CustomerID = *user.BillingCustomerID
	}
	if user.BillingSubscriptionID != nil {
		state.SubscriptionID = *user.BillingSubscriptionID
	}

	return state, nil
}

func (s *Service) SetCustomerID(
	ctx context.Context,
	userID, customerID string,
) error {
	return s.repo.SetBillingCustomer(ctx, userID, customerID)
}

func (s *Service) SetSubscription(
	ctx context.Context,
	userID, subscriptionID, status string,
) error {
	return s.repo.SetSubscription(ctx, userID, subscriptionID, status)
}

func (s *Service) SetSubscriptionStatus(
	ctx context.Context,
	userID, status string,
) error {
	return s.repo.SetSubscriptionStatus(ctx, userID, status)
}

func (s *Service) FindUserIDByCustomer(
	ctx context.Context,
	customerID string,
) (string, error) {
	user, err := s.repo.GetByBillingCustomerID(ctx, customerID)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		TokenVersion: u.TokenVersion,
	}
}

var (
	_ auth.UserProvider = (*Service)(nil)
	_ billing.UserStore = (*Service)(nil)
)
