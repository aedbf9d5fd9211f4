// AngelaMos | 2026
// service.go

package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/liftingtracker/backend/internal/core"
)

type Service struct {
	provider Provider
	users    UserStore
	logger   *slog.Logger
}

func NewService(provider Provider, users UserStore, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		users:    users,
		logger:   logger,
	}
}

// CreateSubscription provisions a provider customer on first use, binds
// the payment method, and opens a subscription. Local state is written
// only after the corresponding provider call has succeeded, so a failed
// call never leaves a dangling reference.
func (s *Service) CreateSubscription(
	ctx context.Context,
	userID, paymentMethodID string,
) (*SubscriptionResponse, error) {
	state, err := s.users.GetBillingState(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load billing state: %w", err)
	}

	customerID := state.CustomerID
	if customerID == "" {
		customerID, err = s.provider.CreateCustomer(
			ctx,
			state.Email,
			state.DisplayName,
			paymentMethodID,
		)
		if err != nil {
			return nil, err
		}

		if err := s.users.SetCustomerID(ctx, userID, customerID); err != nil {
			return nil, fmt.Errorf("persist customer id: %w", err)
		}

		s.logger.Info("billing customer created",
			slog.String("user_id", userID),
			slog.String("customer_id", customerID),
		)
	} else {
		if err := s.provider.AttachPaymentMethod(ctx, customerID, paymentMethodID); err != nil {
			return nil, err
		}
		if err := s.provider.SetDefaultPaymentMethod(ctx, customerID, paymentMethodID); err != nil {
			return nil, err
		}
	}

	subscription, err := s.provider.CreateSubscription(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetSubscription(ctx, userID, subscription.ID, subscription.Status); err != nil {
		return nil, fmt.Errorf("persist subscription: %w", err)
	}

	s.logger.Info("subscription created",
		slog.String("user_id", userID),
		slog.String("subscription_id", subscription.ID),
		slog.String("status", subscription.Status),
	)

	return &SubscriptionResponse{
		SubscriptionID: subscription.ID,
		Status:         subscription.Status,
		ClientSecret:   subscription.ClientSecret,
	}, nil
}

// CancelSubscription cancels at the provider first and only then marks
// the local record canceled.
func (s *Service) CancelSubscription(ctx context.Context, userID string) error {
	state, err := s.users.GetBillingState(ctx, userID)
	if err != nil {
		return fmt.Errorf("load billing state: %w", err)
	}

	if state.SubscriptionID == "" {
		return core.NotFoundError("subscription")
	}

	if err := s.provider.CancelSubscription(ctx, state.SubscriptionID); err != nil {
		return err
	}

	if err := s.users.SetSubscriptionStatus(ctx, userID, StatusCanceled); err != nil {
		return fmt.Errorf("persist cancellation: %w", err)
	}

	s.logger.Info("subscription canceled",
		slog.String("user_id", userID),
		slog.String("subscription_id", state.SubscriptionID),
	)

	return nil
}

func (s *Service) GetSubscriptionState(
	ctx context.Context,
	userID string,
) (*SubscriptionStateResponse, error) {
	state, err := s.users.GetBillingState(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load billing state: %w", err)
	}

	return &SubscriptionStateResponse{
		SubscriptionID: state.SubscriptionID,
		Status:         state.Status,
		Active:         IsActiveStatus(state.Status),
	}, nil
}

func (s *Service) HasActiveSubscription(ctx context.Context, userID string) (bool, error) {
	state, err := s.users.GetBillingState(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load billing state: %w", err)
	}

	return IsActiveStatus(state.Status), nil
}

// ApplyProviderStatus reconciles a status change reported by the
// provider, resolving the owning user through the customer reference.
// Unknown customers are logged and skipped so replayed events for
// deleted users do not fail the whole webhook delivery.
func (s *Service) ApplyProviderStatus(
	ctx context.Context,
	customerID, subscriptionID, status string,
) error {
	userID, err := s.users.FindUserIDByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.logger.Warn("webhook for unknown customer",
				slog.String("customer_id", customerID),
			)
			return nil
		}
		return fmt.Errorf("resolve customer: %w", err)
	}

	if err := s.users.SetSubscription(ctx, userID, subscriptionID, status); err != nil {
		return fmt.Errorf("persist provider status: %w", err)
	}

	s.logger.Info("subscription status reconciled",
		slog.String("user_id", userID),
		slog.String("subscription_id", subscriptionID),
		slog.String("status", status),
	)

	return nil
}
