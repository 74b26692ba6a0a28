package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/oarkflow/authforms/pkg/models"
)

// HTTPVerifier posts JSON bodies to the verification endpoints.
//
// Like fetch, any response whose body is a verdict is accepted whatever its
// status code; only transport errors and undecodable bodies fail.
type HTTPVerifier struct {
	client *resty.Client
}

// NewHTTPVerifier targets baseURL. A zero timeout leaves requests unbounded.
func NewHTTPVerifier(baseURL string, timeout time.Duration) *HTTPVerifier {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &HTTPVerifier{client: c}
}

// NewHTTPVerifierWithClient reuses a configured resty client, for cookies
// shared with a later native submit.
func NewHTTPVerifierWithClient(c *resty.Client) *HTTPVerifier {
	return &HTTPVerifier{client: c}
}

func (v *HTTPVerifier) Verify(ctx context.Context, endpoint string, body map[string]string) (models.Verdict, error) {
	resp, err := v.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(endpoint)
	if err != nil {
		return models.Verdict{}, fmt.Errorf("post %s: %w", endpoint, err)
	}
	var verdict models.Verdict
	if err := json.Unmarshal(resp.Body(), &verdict); err != nil {
		return models.Verdict{}, fmt.Errorf("%w: %s answered %d: %v", ErrMalformedVerdict, endpoint, resp.StatusCode(), err)
	}
	return verdict, nil
}
