// file: service/errors.go

package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"tailorpro/model"
)

var (
	// ErrSessionExpired means no valid credential could be restored; the
	// caller is expected to send the user back to the login entry point.
	ErrSessionExpired = errors.New("session expired")
	// ErrNotAuthenticated is returned when an operation needs a logged in user.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNoRefreshToken is the refresh failure used when the store holds no refresh token.
	ErrNoRefreshToken = errors.New("no refresh token stored")
	// ErrMalformedTokenResponse is returned for a 2xx token response missing a token.
	ErrMalformedTokenResponse = errors.New("token response is missing access_token or refresh_token")
	// ErrUserNotFound is returned when the logged in user's profile does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidID is returned for resource ids that are not UUIDs.
	ErrInvalidID = errors.New("resource id must be a UUID")
	// ErrUnknownMeasurementField is returned for measurement keys no garment defines.
	ErrUnknownMeasurementField = errors.New("unknown measurement field")
)

// APIError is a non-successful response from the remote API. Message carries
// the server's own explanation when the body had one.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote API returned %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err carries a 401 APIError.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func newAPIError(resp *Response) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    serverMessage(resp.StatusCode, resp.Body),
		Body:       resp.Body,
	}
}

// serverMessage extracts the human readable reason from a JSON:API error
// document or an OAuth error body, falling back to the status text.
func serverMessage(status int, body []byte) string {
	if len(body) > 0 {
		var doc model.ErrorDocument
		if err := json.Unmarshal(body, &doc); err == nil && len(doc.Errors) > 0 {
			if doc.Errors[0].Detail != "" {
				return doc.Errors[0].Detail
			}
			if doc.Errors[0].Title != "" {
				return doc.Errors[0].Title
			}
		}
		var oauthErr model.OAuthError
		if err := json.Unmarshal(body, &oauthErr); err == nil {
			if oauthErr.ErrorDescription != "" {
				return oauthErr.ErrorDescription
			}
			if oauthErr.Error != "" {
				return oauthErr.Error
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unexpected status"
}
