// Package httpclient wraps resty behind a small interface so fetchers can be
// tested against fakes.
package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client performs outbound GET requests.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (*resty.Response, error)
}

type restyClient struct {
	client *resty.Client
}

// NewRestyClient returns a Client with the given timeout and retries disabled.
func NewRestyClient(timeout time.Duration) Client {
	c := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &restyClient{client: c}
}

// Get issues a GET request. Non-2xx responses are returned without an error;
// callers decide what counts as success.
func (c *restyClient) Get(ctx context.Context, url string, headers map[string]string) (*resty.Response, error) {
	return c.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
}
