package probe

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// httpClient wraps http.Client with the probe's base URL.
type httpClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *httpClient {
	return &httpClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// get performs a GET request and returns the status and full body.
func (c *httpClient) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, nil, eris.Wrapf(err, "create request %s", path)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, eris.Wrapf(err, "GET %s", path)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, eris.Wrapf(err, "read %s", path)
	}
	return resp.StatusCode, body, nil
}

// getStatus is get that also requires want as the status.
func (c *httpClient) getStatus(ctx context.Context, path string, want int) ([]byte, error) {
	status, body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	if status != want {
		return body, eris.Wrapf(ErrUnexpectedStatus, "GET %s: got %d, want %d", path, status, want)
	}
	return body, nil
}
