package settlement

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Complexlity/paywithglide/internal/httpx"
	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/google/uuid"
)

// GlideClient talks to the Glide sessions API
type GlideClient struct {
	http *httpx.Client
}

// NewGlideClient creates a client for the given project. Session calls are not
// retried unless a policy is passed in opts.
func NewGlideClient(baseURL, projectID string, opts ...httpx.Option) *GlideClient {
	opts = append([]httpx.Option{
		httpx.WithPolicy(httpx.NoRetry),
		httpx.WithHeader("x-project-id", projectID),
	}, opts...)
	return &GlideClient{http: httpx.NewClient("glide", baseURL, opts...)}
}

// CreateSession creates a session. Each call carries a fresh Idempotency-Key.
func (c *GlideClient) CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	var s Session
	err := c.http.Send(ctx, httpx.Request{
		Method: http.MethodPost,
		Path:   "/sessions",
		Header: http.Header{"Idempotency-Key": {uuid.NewString()}},
		Body:   params,
	}, &s)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &s, nil
}

// GetSession fetches a session. Unknown ids wrap model.ErrSessionNotFound.
func (c *GlideClient) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	if err := c.http.GetJSON(ctx, "/sessions/"+url.PathEscape(sessionID), nil, &s); err != nil {
		if httpx.IsStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("session %s: %w", sessionID, model.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	return &s, nil
}

// UpdatePaymentTransaction reports the payer's transaction hash for a session
func (c *GlideClient) UpdatePaymentTransaction(ctx context.Context, params UpdatePaymentParams) (*UpdatePaymentResult, error) {
	var res UpdatePaymentResult
	path := "/sessions/" + url.PathEscape(params.SessionID) + "/update-payment-transaction"
	if err := c.http.PostJSON(ctx, path, params, &res); err != nil {
		return nil, fmt.Errorf("update payment transaction %s: %w", params.SessionID, err)
	}
	return &res, nil
}
