package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	paymentclient "yookassa-bridge/internal/app/services/payment_client"
	"yookassa-bridge/internal/config"
	"yookassa-bridge/internal/models"

	"github.com/shopspring/decimal"
)

// ErrNotConfigured means the YooKassa credentials are missing from the
// environment. This is a deployment problem, not a client one.
var ErrNotConfigured = errors.New("payment credentials are not configured")

// ValidationError rejects a client request before any outbound call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type PaymentService struct {
	cfg    config.YooKassa
	client *paymentclient.PaymentClient
}

func NewPaymentService(cfg config.YooKassa) *PaymentService {
	return &PaymentService{
		cfg:    cfg,
		client: paymentclient.NewPaymentClient(cfg.APIURL, cfg.ShopID, cfg.SecretKey, cfg.RequestTimeout),
	}
}

// CreatePayment validates the request, creates one payment at YooKassa and
// returns the confirmation URL the buyer completes payment at. Validation
// happens strictly before the outbound call.
func (s *PaymentService) CreatePayment(ctx context.Context, req *models.PaymentRequest) (*models.PaymentCreated, error) {
	value, err := normalizeAmount(req)
	if err != nil {
		return nil, err
	}

	if s.cfg.ShopID == "" || s.cfg.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	currency := req.Currency
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	description := req.Description
	if description == "" {
		description = s.cfg.DefaultDescription
	}

	amount := models.Amount{Value: value, Currency: currency}

	payload := &models.CreatePaymentRequest{
		Amount:  amount,
		Capture: true,
		Confirmation: models.Confirmation{
			Type:      "redirect",
			ReturnURL: s.cfg.ReturnURL,
		},
		Description: description,
		Metadata: map[string]string{
			"payment_key": req.PaymentKey,
		},
	}

	if req.CustomerEmail != "" {
		payload.Receipt = &models.Receipt{
			Customer: models.ReceiptCustomer{Email: req.CustomerEmail},
			Items: []models.ReceiptItem{
				{
					Description:    description,
					Quantity:       1,
					Amount:         amount,
					VatCode:        1,
					PaymentMode:    "full_payment",
					PaymentSubject: "commodity",
				},
			},
		}
	}

	created, err := s.client.CreatePayment(ctx, payload)
	if err != nil {
		return nil, err
	}

	if created.Confirmation.ConfirmationURL == "" {
		return nil, fmt.Errorf("payment %s has no confirmation url", created.ID)
	}

	return &models.PaymentCreated{ConfirmationURL: created.Confirmation.ConfirmationURL}, nil
}

func normalizeAmount(req *models.PaymentRequest) (string, error) {
	if req.PaymentKey == "" {
		return "", &ValidationError{Message: "payment_key is required"}
	}

	if req.Amount == "" {
		return "", &ValidationError{Message: "amount is required"}
	}

	amount, err := decimal.NewFromString(string(req.Amount))
	if err != nil {
		return "", &ValidationError{Message: "amount must be a number"}
	}

	if !amount.IsPositive() {
		return "", &ValidationError{Message: "amount must be greater than 0"}
	}

	if req.CustomerEmail != "" {
		if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
			return "", &ValidationError{Message: "customer_email is not a valid email address"}
		}
	}

	return amount.StringFixed(2), nil
}
