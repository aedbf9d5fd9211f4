// AngelaMos | 2026
// webhook_test.go

package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/liftingtracker/backend/internal/config"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(payload string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func newTestWebhookHandler(store *fakeUserStore) *WebhookHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := NewStripeProvider(config.StripeConfig{
		WebhookSecret: testWebhookSecret,
	})
	return NewWebhookHandler(NewService(&fakeProvider{}, store, logger), provider, logger)
}

func postWebhook(t *testing.T, h *WebhookHandler, payload, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signature)
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)
	return rec
}

func TestWebhookAppliesSubscriptionUpdate(t *testing.T) {
	store := newFakeUserStore(&AccountState{
		UserID:         "u1",
		CustomerID:     "cus_1",
		SubscriptionID: "sub_1",
		Status:         StatusIncomplete,
	})
	handler := newTestWebhookHandler(store)

	payload := `{
		"id": "evt_1",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_1",
			"status": "active",
			"customer": {"id": "cus_1"}
		}}
	}`

	rec := postWebhook(t, handler, payload, signPayload(payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if store.states["u1"].Status != StatusActive {
		t.Fatalf("status = %q, want active", store.states["u1"].Status)
	}
}

func TestWebhookToleratesMissingCustomer(t *testing.T) {
	store := newFakeUserStore(&AccountState{
		UserID:         "u1",
		CustomerID:     "cus_1",
		SubscriptionID: "sub_1",
		Status:         StatusActive,
	})
	handler := newTestWebhookHandler(store)

	// A signed event whose subscription carries no customer reference
	// is acknowledged and changes nothing.
	payload := `{
		"id": "evt_2",
		"type": "customer.subscription.deleted",
		"data": {"object": {
			"id": "sub_1",
			"status": "canceled",
			"customer": null
		}}
	}`

	rec := postWebhook(t, handler, payload, signPayload(payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if store.states["u1"].Status != StatusActive {
		t.Fatalf("status = %q, want untouched", store.states["u1"].Status)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	handler := newTestWebhookHandler(newFakeUserStore())

	payload := `{"id": "evt_3", "type": "customer.subscription.updated"}`
	rec := postWebhook(t, handler, payload, "t=1,v1=deadbeef")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
