package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"yookassa-bridge/internal/config"
	"yookassa-bridge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	srv *httptest.Server

	mu     sync.Mutex
	calls  int
	bodies [][]byte

	status int
}

func newFakeTarget(t *testing.T, status int) *fakeTarget {
	t.Helper()

	f := &fakeTarget{status: status}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.calls++
		f.bodies = append(f.bodies, body)
		f.mu.Unlock()

		w.WriteHeader(f.status)
	}))
	t.Cleanup(f.srv.Close)

	return f
}

func (f *fakeTarget) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeTarget) lastBody(t *testing.T) map[string]any {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.bodies)

	var body map[string]any
	require.NoError(t, json.Unmarshal(f.bodies[len(f.bodies)-1], &body))
	return body
}

func TestStatusForEvent(t *testing.T) {
	tests := []struct {
		event  string
		status models.PaymentStatus
		ok     bool
	}{
		{"payment.succeeded", models.StatusSucceeded, true},
		{"payment.canceled", models.StatusCanceled, true},
		{"payment.waiting_for_capture", "", false},
		{"refund.succeeded", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			status, ok := StatusForEvent(tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.status, status)
		})
	}
}

func notification() *models.StatusNotification {
	return &models.StatusNotification{
		PaymentKey:    "ord-1",
		Amount:        "150.00",
		CustomerEmail: "buyer@example.com",
		Status:        models.StatusSucceeded,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
}

func TestBroadcastReachesBothTargets(t *testing.T) {
	storefront := newFakeTarget(t, http.StatusOK)
	sink := newFakeTarget(t, http.StatusOK)

	notifier := NewNotifier(config.Notify{
		StorefrontURL:  storefront.srv.URL,
		RecordSinkURL:  sink.srv.URL,
		RequestTimeout: 5 * time.Second,
	})

	n := notification()
	notifier.Broadcast(context.Background(), n)

	require.Equal(t, 1, storefront.callCount())
	require.Equal(t, 1, sink.callCount())

	storefrontBody := storefront.lastBody(t)
	assert.Equal(t, "ord-1", storefrontBody["payment_key"])
	assert.Equal(t, "succeeded", storefrontBody["status"])
	assert.NotContains(t, storefrontBody, "amount")

	sinkBody := sink.lastBody(t)
	assert.Equal(t, "ord-1", sinkBody["payment_key"])
	assert.Equal(t, "150.00", sinkBody["amount"])
	assert.Equal(t, "buyer@example.com", sinkBody["customer_email"])
	assert.Equal(t, "succeeded", sinkBody["status"])
	assert.Equal(t, n.CreatedAt, sinkBody["created_at"])
}

func TestBroadcastSurvivesTargetFailure(t *testing.T) {
	storefront := newFakeTarget(t, http.StatusInternalServerError)
	sink := newFakeTarget(t, http.StatusOK)

	notifier := NewNotifier(config.Notify{
		StorefrontURL:  storefront.srv.URL,
		RecordSinkURL:  sink.srv.URL,
		RequestTimeout: 5 * time.Second,
	})

	notifier.Broadcast(context.Background(), notification())

	assert.Equal(t, 1, storefront.callCount())
	assert.Equal(t, 1, sink.callCount(), "sink must still be attempted when storefront fails")
}

func TestBroadcastSurvivesUnreachableTarget(t *testing.T) {
	sink := newFakeTarget(t, http.StatusOK)

	notifier := NewNotifier(config.Notify{
		StorefrontURL:  "http://127.0.0.1:1", // nothing listens here
		RecordSinkURL:  sink.srv.URL,
		RequestTimeout: time.Second,
	})

	notifier.Broadcast(context.Background(), notification())

	assert.Equal(t, 1, sink.callCount())
}
