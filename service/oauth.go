// file: service/oauth.go

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"tailorpro/model"

	"golang.org/x/oauth2"
)

// OAuthClient talks to POST /oauth/token with the password and refresh_token
// grants, sending the client credentials in the form body.
type OAuthClient struct {
	config     oauth2.Config
	httpClient *http.Client
}

func NewOAuthClient(baseURL, clientID, clientSecret string, httpClient *http.Client) *OAuthClient {
	return &OAuthClient{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  strings.TrimRight(baseURL, "/") + "/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
	}
}

// PasswordGrant logs in with a username and password.
func (c *OAuthClient) PasswordGrant(ctx context.Context, username, password string) (model.Credential, error) {
	tok, err := c.config.PasswordCredentialsToken(c.context(ctx), username, password)
	if err != nil {
		return model.Credential{}, tokenError(err)
	}
	return credentialFrom(tok), nil
}

// RefreshGrant exchanges refreshToken for a new token pair. A 2xx answer
// without a new refresh token is rejected with ErrMalformedTokenResponse.
func (c *OAuthClient) RefreshGrant(ctx context.Context, refreshToken string) (model.Credential, error) {
	src := c.config.TokenSource(c.context(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return model.Credential{}, tokenError(err)
	}
	// oauth2 copies the old refresh token forward when the server omits it,
	// so the raw response decides.
	if rt, _ := tok.Extra("refresh_token").(string); rt == "" {
		return model.Credential{}, ErrMalformedTokenResponse
	}
	return credentialFrom(tok), nil
}

func (c *OAuthClient) context(ctx context.Context) context.Context {
	if c.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func credentialFrom(tok *oauth2.Token) model.Credential {
	cred := model.Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if v, ok := tok.Extra("expires_in").(float64); ok {
		cred.ExpiresIn = int64(v)
	}
	return cred
}

// tokenError turns an oauth2 failure into an *APIError carrying the
// error_description of the server when there is one.
func tokenError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) || retrieveErr.Response == nil {
		if strings.Contains(err.Error(), "missing access_token") {
			return fmt.Errorf("%w: %v", ErrMalformedTokenResponse, err)
		}
		return fmt.Errorf("token request: %w", err)
	}
	apiErr := &APIError{
		StatusCode: retrieveErr.Response.StatusCode,
		Message:    retrieveErr.ErrorDescription,
		Body:       retrieveErr.Body,
	}
	if apiErr.Message == "" {
		apiErr.Message = serverMessage(apiErr.StatusCode, retrieveErr.Body)
	}
	return apiErr
}
