package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"yookassa-bridge/internal/app/services"
	paymentclient "yookassa-bridge/internal/app/services/payment_client"
	"yookassa-bridge/internal/models"

	"github.com/bytedance/sonic"
)

// CreatePayment starts a payment and returns the confirmation URL the
// buyer is redirected to.
func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	req, err := decodePaymentRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.paymentService.CreatePayment(r.Context(), req)
	if err != nil {
		h.writePaymentError(w, req, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

func (h *Handlers) writePaymentError(w http.ResponseWriter, req *models.PaymentRequest, err error) {
	var validationErr *services.ValidationError
	var apiErr *paymentclient.APIError

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, services.ErrNotConfigured):
		log.Printf("Payment system misconfigured: %v", err)
		writeError(w, http.StatusInternalServerError, "payment system is not configured")
	case errors.As(err, &apiErr):
		log.Printf("Failed to create payment %s: %v", req.PaymentKey, err)
		writeError(w, http.StatusInternalServerError, apiErr.Message)
	default:
		log.Printf("Failed to create payment %s: %v", req.PaymentKey, err)
		writeError(w, http.StatusInternalServerError, "failed to create payment")
	}
}

func decodePaymentRequest(r *http.Request) (*models.PaymentRequest, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}

		return &models.PaymentRequest{
			PaymentKey:    r.PostFormValue("payment_key"),
			Amount:        models.AmountValue(r.PostFormValue("amount")),
			Currency:      r.PostFormValue("currency"),
			Description:   r.PostFormValue("description"),
			CustomerEmail: r.PostFormValue("customer_email"),
		}, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	var req models.PaymentRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		return nil, err
	}

	return &req, nil
}
