package handler

import (
	"encoding/json"
	"net/http"
	"tailorpro/common"
	"tailorpro/logger"
	"tailorpro/model"
	"tailorpro/repository"
	"tailorpro/service"
	"time"

	"github.com/sirupsen/logrus"
)

// OAuthHandler serves the token endpoint. Refresh tokens are rotated: every
// successful grant consumes the presented refresh token and issues a new one.
type OAuthHandler struct {
	users      *repository.UserRepository
	tokens     *repository.TokenRepository
	issuer     *service.TokenIssuer
	clients    map[string]string
	refreshTTL time.Duration
}

// NewOAuthHandler creates the handler. clients maps consumer ids to secrets.
func NewOAuthHandler(users *repository.UserRepository, tokens *repository.TokenRepository, issuer *service.TokenIssuer, clients map[string]string, refreshTTL time.Duration) *OAuthHandler {
	return &OAuthHandler{users: users, tokens: tokens, issuer: issuer, clients: clients, refreshTTL: refreshTTL}
}

// Token godoc
// @Summary      Issue an access token
// @Description  Password and refresh_token grants. Refresh tokens are single use.
// @Tags         oauth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        grant_type     formData  string  true   "password or refresh_token"
// @Param        client_id      formData  string  true   "Consumer id"
// @Param        client_secret  formData  string  false  "Consumer secret"
// @Param        username       formData  string  false  "Required for the password grant"
// @Param        password       formData  string  false  "Required for the password grant"
// @Param        refresh_token  formData  string  false  "Required for the refresh_token grant"
// @Success      200  {object}  model.TokenResponse
// @Failure      400  {object}  model.OAuthError
// @Failure      401  {object}  model.OAuthError
// @Router       /oauth/token [post]
func (h *OAuthHandler) Token(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := r.ParseForm(); err != nil {
		return common.NewOAuthError(http.StatusBadRequest, "invalid_request", "The request body could not be parsed.", nil)
	}
	req := model.TokenRequest{
		GrantType:    r.PostForm.Get("grant_type"),
		ClientID:     r.PostForm.Get("client_id"),
		ClientSecret: r.PostForm.Get("client_secret"),
		Username:     r.PostForm.Get("username"),
		Password:     r.PostForm.Get("password"),
		RefreshToken: r.PostForm.Get("refresh_token"),
	}
	if id, secret, ok := r.BasicAuth(); ok && req.ClientID == "" {
		req.ClientID, req.ClientSecret = id, secret
	}
	if appErr := common.Validate(req); appErr != nil {
		return common.NewOAuthError(http.StatusBadRequest, "invalid_request", appErr.Message, nil)
	}

	log := logger.Log.WithFields(logrus.Fields{
		"grant_type": req.GrantType,
		"client_id":  req.ClientID,
	})

	if secret, ok := h.clients[req.ClientID]; !ok || secret != req.ClientSecret {
		log.Warn("Client authentication failed")
		return common.NewOAuthError(http.StatusUnauthorized, "invalid_client", "Client authentication failed.", nil)
	}

	var account *model.Account
	switch req.GrantType {
	case "password":
		acc, err := h.users.Authenticate(req.Username, req.Password)
		if err != nil {
			log.WithField("username", req.Username).Warn("Password grant rejected")
			return common.NewOAuthError(http.StatusBadRequest, "invalid_grant", "The user credentials were incorrect.", nil)
		}
		account = acc
	case "refresh_token":
		stored, err := h.tokens.Consume(req.RefreshToken, req.ClientID)
		if err != nil {
			log.Warn("Refresh grant rejected")
			return common.NewOAuthError(http.StatusBadRequest, "invalid_grant", "The refresh token is invalid.", nil)
		}
		acc, err := h.users.GetByID(stored.UserID)
		if err != nil {
			return common.NewOAuthError(http.StatusBadRequest, "invalid_grant", "The refresh token is invalid.", err)
		}
		account = acc
	}

	accessToken, err := h.issuer.GenerateAccessToken(account, req.ClientID)
	if err != nil {
		return common.NewOAuthError(http.StatusInternalServerError, "server_error", "Could not issue access token.", err)
	}
	refreshToken, err := h.tokens.Issue(account.ID, req.ClientID, h.refreshTTL)
	if err != nil {
		return common.NewOAuthError(http.StatusInternalServerError, "server_error", "Could not issue refresh token.", err)
	}
	log.WithField("uid", account.UID).Info("Token pair issued")

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    h.issuer.ExpiresIn(),
		RefreshToken: refreshToken.Token,
	})
	return nil
}
