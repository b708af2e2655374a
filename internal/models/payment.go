package models

import "strings"

type PaymentStatus string

const (
	StatusSucceeded PaymentStatus = "succeeded"
	StatusCanceled  PaymentStatus = "canceled"
	StatusFailed    PaymentStatus = "failed"
)

// AmountValue holds the raw amount from the client, which may arrive as a
// JSON number or a numeric string. Parsing happens at the validation
// boundary, not here.
type AmountValue string

func (a *AmountValue) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "null" {
		return nil
	}

	*a = AmountValue(value)
	return nil
}

// PaymentRequest is the inbound body of the payment creation endpoint.
type PaymentRequest struct {
	PaymentKey    string      `json:"payment_key"`
	Amount        AmountValue `json:"amount"`
	Currency      string      `json:"currency,omitempty"`
	Description   string      `json:"description,omitempty"`
	CustomerEmail string      `json:"customer_email,omitempty"`
}

type PaymentCreated struct {
	ConfirmationURL string `json:"confirmation_url"`
}

// StatusNotification is the normalized outcome of one webhook event,
// fanned out to every notification target.
type StatusNotification struct {
	PaymentKey    string
	Amount        string
	CustomerEmail string
	Status        PaymentStatus
	CreatedAt     string
}

type StorefrontNotification struct {
	PaymentKey string        `json:"payment_key"`
	Status     PaymentStatus `json:"status"`
}

type RecordSinkEntry struct {
	PaymentKey    string        `json:"payment_key"`
	Amount        string        `json:"amount"`
	CustomerEmail string        `json:"customer_email"`
	Status        PaymentStatus `json:"status"`
	CreatedAt     string        `json:"created_at"`
}
