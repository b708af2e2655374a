package notifyclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
)

// NotifyClient posts JSON payloads to downstream notification endpoints.
type NotifyClient struct {
	timeout time.Duration
	client  *fasthttp.Client
}

func NewNotifyClient(timeout time.Duration) *NotifyClient {
	return &NotifyClient{
		timeout: timeout,
		client:  &fasthttp.Client{},
	}
}

func (c *NotifyClient) PostJSON(ctx context.Context, url string, payload any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req.SetRequestURI(url)
	req.Header.SetMethod(http.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	if statusCode := resp.StatusCode(); statusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notification rejected with status code: %d", statusCode)
	}

	return nil
}
