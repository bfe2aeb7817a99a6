// file: service/api_client.go

package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"tailorpro/logger"
	"tailorpro/model"
	"tailorpro/repository"

	"github.com/sirupsen/logrus"
)

// Request describes one call to the remote API. Body is kept as bytes so the
// request can be dispatched a second time after a token refresh.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
	Header http.Header
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ITokenRefresher exchanges a refresh token for a new credential.
type ITokenRefresher interface {
	RefreshGrant(ctx context.Context, refreshToken string) (model.Credential, error)
}

// ISender is implemented by APIClient; services depend on it so they can be
// tested without a server.
type ISender interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// APIClient attaches the stored bearer token to every request and recovers
// from one 401 per request by refreshing the credential. It is safe for
// concurrent use. Concurrent 401s are not coalesced: each request may run its
// own refresh and the last credential written to the store wins.
type APIClient struct {
	baseURL          string
	httpClient       *http.Client
	store            repository.ITokenStore
	refresher        ITokenRefresher
	metrics          *Metrics
	onSessionExpired func(ctx context.Context)
}

type Option func(*APIClient)

func WithHTTPClient(client *http.Client) Option {
	return func(c *APIClient) { c.httpClient = client }
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *APIClient) { c.metrics = metrics }
}

// WithSessionExpiredHandler sets the side effect run after the session has
// been cleared, typically a redirect to the login entry point.
func WithSessionExpiredHandler(fn func(ctx context.Context)) Option {
	return func(c *APIClient) { c.onSessionExpired = fn }
}

func NewAPIClient(baseURL string, store repository.ITokenStore, refresher ITokenRefresher, opts ...Option) *APIClient {
	c := &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		store:      store,
		refresher:  refresher,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	return c
}

// Send dispatches req with the current access token. Non-401 responses are
// returned as they are with a nil error. On the first 401 the credential is
// refreshed and req is sent once more; a 401 on that second attempt is
// returned together with an *APIError. When no refresh is possible the token
// store is cleared and the returned error matches ErrSessionExpired while
// wrapping the original 401.
func (c *APIClient) Send(ctx context.Context, req *Request) (*Response, error) {
	token, _, err := repository.Lookup(ctx, c.store, repository.KeyAuthToken)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}
	return c.send(ctx, req, token, false)
}

func (c *APIClient) send(ctx context.Context, req *Request, token string, alreadyRetried bool) (*Response, error) {
	resp, err := c.dispatch(ctx, req, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	log := logger.Log.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   req.Path,
	})
	if alreadyRetried {
		log.Warn("Request rejected again after token refresh")
		return resp, newAPIError(resp)
	}

	cred, err := c.refresh(ctx)
	if err != nil {
		log.WithError(err).Warn("Token refresh failed, clearing session")
		c.expireSession(ctx)
		return resp, fmt.Errorf("%w: %w", ErrSessionExpired, newAPIError(resp))
	}
	log.Info("Access token refreshed, retrying request")
	return c.send(ctx, req, cred.AccessToken, true)
}

func (c *APIClient) refresh(ctx context.Context) (model.Credential, error) {
	refreshToken, ok, err := repository.Lookup(ctx, c.store, repository.KeyRefreshToken)
	if err != nil {
		return model.Credential{}, err
	}
	if !ok {
		c.metrics.Refreshes.WithLabelValues(refreshMissing).Inc()
		return model.Credential{}, ErrNoRefreshToken
	}

	cred, err := c.refresher.RefreshGrant(ctx, refreshToken)
	if err == nil && (cred.AccessToken == "" || cred.RefreshToken == "") {
		err = ErrMalformedTokenResponse
	}
	if err != nil {
		c.metrics.Refreshes.WithLabelValues(refreshFailed).Inc()
		return model.Credential{}, err
	}

	if err := c.store.SetCredential(ctx, cred); err != nil {
		c.metrics.Refreshes.WithLabelValues(refreshFailed).Inc()
		return model.Credential{}, fmt.Errorf("store refreshed credential: %w", err)
	}
	c.metrics.Refreshes.WithLabelValues(refreshSucceeded).Inc()
	return cred, nil
}

func (c *APIClient) expireSession(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		logger.Log.WithError(err).Error("Failed to clear token store")
	}
	c.metrics.SessionExpiries.Inc()
	if c.onSessionExpired != nil {
		c.onSessionExpired(ctx)
	}
}

func (c *APIClient) dispatch(ctx context.Context, req *Request, token string) (*Response, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", model.MediaType)
	httpReq.Header.Set("Content-Type", model.MediaType)
	for k, values := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.Requests.WithLabelValues(req.Method, "error").Inc()
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	c.metrics.Requests.WithLabelValues(req.Method, strconv.Itoa(httpResp.StatusCode)).Inc()

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
	}, nil
}
