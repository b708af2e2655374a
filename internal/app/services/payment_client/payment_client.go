package paymentclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"yookassa-bridge/internal/models"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// PaymentClient talks to the YooKassa payments API.
type PaymentClient struct {
	apiURL    string
	authToken string
	timeout   time.Duration
	client    *fasthttp.Client
}

// APIError is a creation call rejected by YooKassa. Message carries the
// human-readable description from the error body and is safe to show to
// the caller.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yookassa returned %d: %s", e.StatusCode, e.Message)
}

func NewPaymentClient(apiURL, shopID, secretKey string, timeout time.Duration) *PaymentClient {
	credentials := base64.StdEncoding.EncodeToString([]byte(shopID + ":" + secretKey))

	return &PaymentClient{
		apiURL:    apiURL,
		authToken: "Basic " + credentials,
		timeout:   timeout,
		client:    &fasthttp.Client{},
	}
}

// CreatePayment issues one payment creation call. Every call carries a
// freshly generated Idempotency-Key, so a retried transport frame cannot
// create a second payment.
func (c *PaymentClient) CreatePayment(ctx context.Context, payment *models.CreatePaymentRequest) (*models.CreatePaymentResponse, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	payload, err := sonic.Marshal(payment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment: %w", err)
	}

	req.SetRequestURI(c.apiURL + "/payments")
	req.Header.SetMethod(http.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", c.authToken)
	req.Header.Set("Idempotency-Key", uuid.NewString())
	req.SetBody(payload)

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("failed to make payment request: %w", err)
	}

	statusCode := resp.StatusCode()
	if statusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: statusCode,
			Message:    errorMessage(resp.Body()),
		}
	}

	var created models.CreatePaymentResponse
	if err := sonic.Unmarshal(resp.Body(), &created); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	return &created, nil
}

func errorMessage(body []byte) string {
	var apiErr models.APIError
	if err := sonic.Unmarshal(body, &apiErr); err == nil && apiErr.Description != "" {
		return apiErr.Description
	}

	return "failed to create payment"
}
