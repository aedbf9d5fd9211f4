// AngelaMos | 2026
// service_test.go

package billing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/liftingtracker/backend/internal/core"
)

type fakeProvider struct {
	customers     int
	subscriptions int
	attached      []string
	canceled      []string
	subStatus     string
	clientSecret  string
	failCreateSub error
}

func (f *fakeProvider) CreateCustomer(
	_ context.Context,
	_, _, _ string,
) (string, error) {
	f.customers++
	return fmt.Sprintf("cus_%d", f.customers), nil
}

func (f *fakeProvider) AttachPaymentMethod(_ context.Context, _, pm string) error {
	f.attached = append(f.attached, pm)
	return nil
}

func (f *fakeProvider) SetDefaultPaymentMethod(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeProvider) CreateSubscription(
	_ context.Context,
	_ string,
) (*ProviderSubscription, error) {
	if f.failCreateSub != nil {
		return nil, f.failCreateSub
	}
	f.subscriptions++
	status := f.subStatus
	if status == "" {
		status = StatusIncomplete
	}
	return &ProviderSubscription{
		ID:           fmt.Sprintf("sub_%d", f.subscriptions),
		Status:       status,
		ClientSecret: f.clientSecret,
	}, nil
}

func (f *fakeProvider) CancelSubscription(_ context.Context, id string) error {
	f.canceled = append(f.canceled, id)
	return nil
}

type fakeUserStore struct {
	states map[string]*AccountState
}

func newFakeUserStore(states ...*AccountState) *fakeUserStore {
	s := &fakeUserStore{states: make(map[string]*AccountState)}
	for _, state := range states {
		s.states[state.UserID] = state
	}
	return s
}

func (f *fakeUserStore) GetBillingState(_ context.Context, userID string) (*AccountState, error) {
	state, ok := f.states[userID]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *state
	return &copied, nil
}

func (f *fakeUserStore) SetCustomerID(_ context.Context, userID, customerID string) error {
	f.states[userID].CustomerID = customerID
	return nil
}

func (f *fakeUserStore) SetSubscription(
	_ context.Context,
	userID, subscriptionID, status string,
) error {
	f.states[userID].SubscriptionID = subscriptionID
	f.states[userID].Status = status
	return nil
}

func (f *fakeUserStore) SetSubscriptionStatus(_ context.Context, userID, status string) error {
	f.states[userID].Status = status
	return nil
}

func (f *fakeUserStore) FindUserIDByCustomer(_ context.Context, customerID string) (string, error) {
	for id, state := range f.states {
		if state.CustomerID == customerID {
			return id, nil
		}
	}
	return "", core.ErrNotFound
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateSubscriptionProvisionsCustomerOnce(t *testing.T) {
	provider := &fakeProvider{subStatus: StatusActive}
	store := newFakeUserStore(&AccountState{
		UserID:      "u1",
		Email:       "lifter@example.com",
		DisplayName: "Test Lifter",
	})
	service := NewService(provider, store, testLogger())

	first, err := service.CreateSubscription(context.Background(), "u1", "pm_1")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.SubscriptionID == "" {
		t.Fatal("expected subscription id")
	}
	if store.states["u1"].CustomerID != "cus_1" {
		t.Fatalf("customer id = %q, want cus_1", store.states["u1"].CustomerID)
	}

	if _, err := service.CreateSubscription(context.Background(), "u1", "pm_2"); err != nil {
		t.Fatalf("second create: %v", err)
	}
	if provider.customers != 1 {
		t.Fatalf("provider customers = %d, want 1", provider.customers)
	}
	if len(provider.attached) != 1 || provider.attached[0] != "pm_2" {
		t.Fatalf("attached = %v, want [pm_2]", provider.attached)
	}
}

func TestCreateSubscriptionSkipsLocalWriteOnProviderFailure(t *testing.T) {
	provider := &fakeProvider{
		failCreateSub: core.ProviderError("Your card was declined."),
	}
	store := newFakeUserStore(&AccountState{
		UserID: "u1",
		Email:  "lifter@example.com",
	})
	service := NewService(provider, store, testLogger())

	_, err := service.CreateSubscription(context.Background(), "u1", "pm_1")
	if !errors.Is(err, core.ErrProvider) {
		t.Fatalf("err = %v, want ErrProvider", err)
	}

	var appErr *core.AppError
	if !errors.As(err, &appErr) || appErr.Message != "Your card was declined." {
		t.Fatalf("provider message not preserved: %v", err)
	}
	if store.states["u1"].SubscriptionID != "" {
		t.Fatal("subscription persisted despite provider failure")
	}
}

func TestCreateSubscriptionReturnsClientSecretWhenIncomplete(t *testing.T) {
	provider := &fakeProvider{subStatus: StatusIncomplete, clientSecret: "pi_secret_123"}
	store := newFakeUserStore(&AccountState{UserID: "u1", Email: "lifter@example.com"})
	service := NewService(provider, store, testLogger())

	resp, err := service.CreateSubscription(context.Background(), "u1", "pm_1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.ClientSecret != "pi_secret_123" {
		t.Fatalf("client secret = %q", resp.ClientSecret)
	}
	if resp.Status != StatusIncomplete {
		t.Fatalf("status = %q, want incomplete", resp.Status)
	}
}

func TestCancelSubscription(t *testing.T) {
	tests := []struct {
		name       string
		state      *AccountState
		wantErr    error
		wantCancel bool
	}{
		{
			name: "active subscription",
			state: &AccountState{
				UserID:         "u1",
				CustomerID:     "cus_1",
				SubscriptionID: "sub_1",
				Status:         StatusActive,
			},
			wantCancel: true,
		},
		{
			name:    "no subscription",
			state:   &AccountState{UserID: "u1"},
			wantErr: core.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{}
			store := newFakeUserStore(tt.state)
			service := NewService(provider, store, testLogger())

			err := service.CancelSubscription(context.Background(), "u1")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("cancel: %v", err)
			}
			if !tt.wantCancel || len(provider.canceled) != 1 {
				t.Fatalf("canceled = %v", provider.canceled)
			}
			if store.states["u1"].Status != StatusCanceled {
				t.Fatalf("status = %q, want canceled", store.states["u1"].Status)
			}

			active, err := service.HasActiveSubscription(context.Background(), "u1")
			if err != nil {
				t.Fatalf("has active: %v", err)
			}
			if active {
				t.Fatal("subscription still reported active after cancel")
			}
		})
	}
}

func TestApplyProviderStatus(t *testing.T) {
	store := newFakeUserStore(&AccountState{
		UserID:         "u1",
		CustomerID:     "cus_1",
		SubscriptionID: "sub_1",
		Status:         StatusActive,
	})
	service := NewService(&fakeProvider{}, store, testLogger())

	err := service.ApplyProviderStatus(context.Background(), "cus_1", "sub_1", StatusPastDue)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if store.states["u1"].Status != StatusPastDue {
		t.Fatalf("status = %q, want past_due", store.states["u1"].Status)
	}

	// Unknown customers are skipped, not errors.
	if err := service.ApplyProviderStatus(context.Background(), "cus_missing", "sub_2", StatusActive); err != nil {
		t.Fatalf("unknown customer: %v", err)
	}
}

func TestIsActiveStatus(t *testing.T) {
	active := []string{StatusActive, StatusTrialing}
	inactive := []string{StatusNone, StatusIncomplete, StatusPastDue, StatusCanceled}

	for _, status := range active {
		if !IsActiveStatus(status) {
			t.Errorf("IsActiveStatus(%q) = false, want true", status)
		}
	}
	for _, status := range inactive {
		if IsActiveStatus(status) {
			t.Errorf("IsActiveStatus(%q) = true, want false", status)
		}
	}
}
