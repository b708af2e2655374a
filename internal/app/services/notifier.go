package services

import (
	"context"
	"log"
	"sync"

	notifyclient "yookassa-bridge/internal/app/services/notify_client"
	"yookassa-bridge/internal/config"
	"yookassa-bridge/internal/models"
)

// StatusForEvent maps a YooKassa event kind to a normalized payment status.
// Unknown kinds are not actionable.
func StatusForEvent(event string) (models.PaymentStatus, bool) {
	switch event {
	case models.EventPaymentSucceeded:
		return models.StatusSucceeded, true
	case models.EventPaymentCanceled:
		return models.StatusCanceled, true
	}

	return "", false
}

// Notifier fans one status notification out to the storefront platform and
// the record-keeping sink. Both sends are best effort: failures are logged
// and swallowed so the webhook acknowledgment never depends on them.
type Notifier struct {
	storefrontURL string
	recordSinkURL string
	client        *notifyclient.NotifyClient
}

func NewNotifier(cfg config.Notify) *Notifier {
	return &Notifier{
		storefrontURL: cfg.StorefrontURL,
		recordSinkURL: cfg.RecordSinkURL,
		client:        notifyclient.NewNotifyClient(cfg.RequestTimeout),
	}
}

// Broadcast sends both notifications concurrently and waits for both to
// finish. One target failing must not keep the other from being attempted.
func (n *Notifier) Broadcast(ctx context.Context, notification *models.StatusNotification) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		n.notifyStorefront(ctx, notification)
	}()

	go func() {
		defer wg.Done()
		n.recordPayment(ctx, notification)
	}()

	wg.Wait()
}

func (n *Notifier) notifyStorefront(ctx context.Context, notification *models.StatusNotification) {
	payload := models.StorefrontNotification{
		PaymentKey: notification.PaymentKey,
		Status:     notification.Status,
	}

	if err := n.client.PostJSON(ctx, n.storefrontURL, payload); err != nil {
		log.Printf("Failed to notify storefront about payment %s: %v", notification.PaymentKey, err)
		return
	}

	log.Printf("Storefront notified: %s -> %s", notification.PaymentKey, notification.Status)
}

func (n *Notifier) recordPayment(ctx context.Context, notification *models.StatusNotification) {
	entry := models.RecordSinkEntry{
		PaymentKey:    notification.PaymentKey,
		Amount:        notification.Amount,
		CustomerEmail: notification.CustomerEmail,
		Status:        notification.Status,
		CreatedAt:     notification.CreatedAt,
	}

	if err := n.client.PostJSON(ctx, n.recordSinkURL, entry); err != nil {
		log.Printf("Failed to record payment %s: %v", notification.PaymentKey, err)
		return
	}

	log.Printf("Payment recorded: %s", notification.PaymentKey)
}
