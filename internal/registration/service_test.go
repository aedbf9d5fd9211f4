// AngelaMos | 2026
// service_test.go

package registration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/liftingtracker/backend/internal/auth"
	"github.com/liftingtracker/backend/internal/core"
	"github.com/liftingtracker/backend/internal/user"
)

type memStore struct {
	drafts map[string]*Draft
}

func newMemStore() *memStore {
	return &memStore{drafts: make(map[string]*Draft)}
}

func (m *memStore) Get(_ context.Context, sid string) (*Draft, error) {
	d, ok := m.drafts[sid]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *memStore) Save(_ context.Context, sid string, d *Draft) error {
	copied := *d
	m.drafts[sid] = &copied
	return nil
}

func (m *memStore) Delete(_ context.Context, sid string) error {
	delete(m.drafts, sid)
	return nil
}

type fakeAccounts struct {
	created []user.CreateAccountParams
	err     error
}

func (f *fakeAccounts) CreateAccount(
	_ context.Context,
	params user.CreateAccountParams,
) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, params)
	return &user.User{ID: "u1", Username: params.Username, Email: params.Email}, nil
}

type fakeSessions struct {
	userIDs []string
}

func (f *fakeSessions) CreateSession(
	_ context.Context,
	userID, _, _ string,
) (*auth.AuthResponse, error) {
	f.userIDs = append(f.userIDs, userID)
	return &auth.AuthResponse{}, nil
}

func newTestService(store DraftStore, accounts *fakeAccounts, sessions *fakeSessions) *Service {
	return NewService(
		store,
		accounts,
		sessions,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func accountStepRequest() *StepRequest {
	return &StepRequest{
		Email:           strPtr("lifter@example.com"),
		Password:        strPtr("hunter2hunter2"),
		ConfirmPassword: strPtr("hunter2hunter2"),
		TermsAccepted:   boolPtr(true),
	}
}

func TestStartOrResume(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, &fakeAccounts{}, &fakeSessions{})

	draft, err := service.StartOrResume(context.Background(), "sid")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if draft.CurrentStep != StepAccount {
		t.Fatalf("step = %d, want 1", draft.CurrentStep)
	}

	// Resume returns the saved draft, not a fresh one.
	draft.Email = "saved@example.com"
	if err := store.Save(context.Background(), "sid", draft); err != nil {
		t.Fatal(err)
	}
	resumed, err := service.StartOrResume(context.Background(), "sid")
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.Email != "saved@example.com" {
		t.Fatalf("resume lost state: %q", resumed.Email)
	}
}

func TestNextAdvancesOnValidStep(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, &fakeAccounts{}, &fakeSessions{})

	if _, err := service.StartOrResume(context.Background(), "sid"); err != nil {
		t.Fatal(err)
	}

	draft, err := service.Next(context.Background(), "sid", accountStepRequest())
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if draft.CurrentStep != StepPersonal {
		t.Fatalf("step = %d, want 2", draft.CurrentStep)
	}
}

func TestNextRejectsInvalidStepButKeepsFields(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, &fakeAccounts{}, &fakeSessions{})

	if _, err := service.StartOrResume(context.Background(), "sid"); err != nil {
		t.Fatal(err)
	}

	req := accountStepRequest()
	req.TermsAccepted = boolPtr(false)

	_, err := service.Next(context.Background(), "sid", req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var appErr *core.AppError
	if !errors.As(err, &appErr) ||
		appErr.Message != "You must accept the terms and conditions" {
		t.Fatalf("err = %v", err)
	}

	// Submitted fields survive the rejection.
	saved, err := service.Get(context.Background(), "sid")
	if err != nil {
		t.Fatal(err)
	}
	if saved.Email != "lifter@example.com" {
		t.Fatalf("email not kept: %q", saved.Email)
	}
	if saved.CurrentStep != StepAccount {
		t.Fatalf("step advanced past failed validation: %d", saved.CurrentStep)
	}
}

func TestPrevNeverValidatesAndFloorsAtOne(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, &fakeAccounts{}, &fakeSessions{})

	draft := NewDraft()
	draft.CurrentStep = StepPersonal
	if err := store.Save(context.Background(), "sid", draft); err != nil {
		t.Fatal(err)
	}

	back, err := service.Prev(context.Background(), "sid", &StepRequest{})
	if err != nil {
		t.Fatalf("prev: %v", err)
	}
	if back.CurrentStep != StepAccount {
		t.Fatalf("step = %d, want 1", back.CurrentStep)
	}

	again, err := service.Prev(context.Background(), "sid", &StepRequest{})
	if err != nil {
		t.Fatalf("prev at floor: %v", err)
	}
	if again.CurrentStep != StepAccount {
		t.Fatalf("step = %d, floor is 1", again.CurrentStep)
	}
}

func completedDraft() *Draft {
	d := NewDraft()
	d.CurrentStep = StepGoals
	d.Email = "lifter@example.com"
	d.Password = "hunter2hunter2"
	d.ConfirmPassword = "hunter2hunter2"
	d.TermsAccepted = true
	d.FirstName = "Jane"
	d.LastName = "Doe"
	d.Username = "jane_doe"
	d.HeightCm = "170"
	d.CurrentWeight = "65.5"
	return d
}

func TestCompleteCreatesAccountAndDeletesDraft(t *testing.T) {
	store := newMemStore()
	accounts := &fakeAccounts{}
	sessions := &fakeSessions{}
	service := newTestService(store, accounts, sessions)

	if err := store.Save(context.Background(), "sid", completedDraft()); err != nil {
		t.Fatal(err)
	}

	resp, err := service.Complete(context.Background(), "sid", &StepRequest{}, "ua", "1.2.3.4")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp == nil {
		t.Fatal("expected auth response")
	}

	if len(accounts.created) != 1 {
		t.Fatalf("accounts created = %d, want 1", len(accounts.created))
	}
	params := accounts.created[0]
	if params.Username != "jane_doe" || params.Email != "lifter@example.com" {
		t.Fatalf("unexpected params: %+v", params)
	}
	if params.Profile.HeightCm != 170 || params.Profile.CurrentWeight != 65.5 {
		t.Fatalf("profile not mapped: %+v", params.Profile)
	}
	if params.Profile.ProteinPercentage != 30 {
		t.Fatalf("macro not parsed: %+v", params.Profile)
	}

	if len(sessions.userIDs) != 1 || sessions.userIDs[0] != "u1" {
		t.Fatalf("session not opened: %v", sessions.userIDs)
	}

	if _, err := store.Get(context.Background(), "sid"); !errors.Is(err, core.ErrNotFound) {
		t.Fatal("draft not deleted after completion")
	}
}

func TestCompleteRejectedBeforeLastStep(t *testing.T) {
	store := newMemStore()
	accounts := &fakeAccounts{}
	sessions := &fakeSessions{}
	service := newTestService(store, accounts, sessions)

	// A fresh draft with valid credentials but steps 2-4 never visited.
	if _, err := service.StartOrResume(context.Background(), "sid"); err != nil {
		t.Fatal(err)
	}

	_, err := service.Complete(context.Background(), "sid", accountStepRequest(), "ua", "1.2.3.4")
	if err == nil {
		t.Fatal("expected completion to be rejected before the last step")
	}

	var appErr *core.AppError
	if !errors.As(err, &appErr) ||
		appErr.Message != "Please complete all registration steps" {
		t.Fatalf("err = %v", err)
	}

	if len(accounts.created) != 0 {
		t.Fatalf("account created from step 1: %+v", accounts.created[0])
	}
	if len(sessions.userIDs) != 0 {
		t.Fatalf("session opened without an account: %v", sessions.userIDs)
	}

	// The merged fields survive for when the user resumes the wizard.
	saved, getErr := store.Get(context.Background(), "sid")
	if getErr != nil {
		t.Fatal(getErr)
	}
	if saved.CurrentStep != StepAccount {
		t.Fatalf("step = %d, want 1", saved.CurrentStep)
	}
	if saved.Email != "lifter@example.com" {
		t.Fatalf("email not kept: %q", saved.Email)
	}
}

func TestCompleteKeepsDraftOnDuplicate(t *testing.T) {
	store := newMemStore()
	accounts := &fakeAccounts{err: core.DuplicateError("email")}
	service := newTestService(store, accounts, &fakeSessions{})

	if err := store.Save(context.Background(), "sid", completedDraft()); err != nil {
		t.Fatal(err)
	}

	_, err := service.Complete(context.Background(), "sid", &StepRequest{}, "ua", "1.2.3.4")
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("err = %v, want duplicate", err)
	}

	saved, getErr := store.Get(context.Background(), "sid")
	if getErr != nil {
		t.Fatal("draft lost after failed completion")
	}
	if saved.CurrentStep != StepGoals {
		t.Fatalf("step = %d, want to stay at 4", saved.CurrentStep)
	}
}

func TestRestartSeedsFreshDraft(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, &fakeAccounts{}, &fakeSessions{})

	if err := store.Save(context.Background(), "sid", completedDraft()); err != nil {
		t.Fatal(err)
	}

	draft, err := service.Restart(context.Background(), "sid")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if draft.CurrentStep != StepAccount || draft.Email != "" {
		t.Fatalf("draft not reset: %+v", draft)
	}
}
