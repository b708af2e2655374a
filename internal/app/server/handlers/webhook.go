package handlers

import (
	"io"
	"log"
	"net/http"
	"time"

	"yookassa-bridge/internal/app/services"
	"yookassa-bridge/internal/models"

	"github.com/bytedance/sonic"
)

type webhookAck struct {
	Success bool `json:"success"`
}

// HandleWebhook reconciles one payment notification delivered by YooKassa.
// Recognized events are always acknowledged with 200, whatever happens
// downstream, so YooKassa never redelivers an event we cannot deduplicate.
func (h *Handlers) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var event models.WebhookEvent
	if err := sonic.Unmarshal(body, &event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid webhook body")
		return
	}

	paymentKey := event.Object.Metadata["payment_key"]
	if paymentKey == "" {
		log.Printf("Webhook event %s carries no payment_key, ignoring", event.Event)
		writeJSON(w, http.StatusOK, webhookAck{Success: true})
		return
	}

	status, ok := services.StatusForEvent(event.Event)
	if !ok {
		log.Printf("Ignoring webhook event %s for payment %s", event.Event, paymentKey)
		writeJSON(w, http.StatusOK, webhookAck{Success: true})
		return
	}

	notification := &models.StatusNotification{
		PaymentKey:    paymentKey,
		Amount:        event.Object.Amount.Value,
		CustomerEmail: customerEmail(&event.Object),
		Status:        status,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	h.notifier.Broadcast(r.Context(), notification)

	writeJSON(w, http.StatusOK, webhookAck{Success: true})
}

func customerEmail(object *models.WebhookObject) string {
	if object.Receipt != nil && object.Receipt.Customer.Email != "" {
		return object.Receipt.Customer.Email
	}

	return object.Metadata["customer_email"]
}
