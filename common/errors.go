package common

import (
	"encoding/json"
	"net/http"
	"strconv"
	"tailorpro/logger"
	"tailorpro/model"

	"github.com/sirupsen/logrus"
)

// AppError is a failed request of the stand-in server. Errors of the token
// endpoint set OAuthCode and are rendered as OAuth error bodies; all others
// are rendered as JSON:API error documents.
type AppError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	OAuthCode string `json:"-"`
	Err       error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewOAuthError builds a token endpoint failure such as invalid_grant.
func NewOAuthError(code int, oauthCode, description string, err error) *AppError {
	return &AppError{
		Code:      code,
		Message:   description,
		OAuthCode: oauthCode,
		Err:       err,
	}
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	if e.OAuthCode != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(e.Code)
		json.NewEncoder(w).Encode(model.OAuthError{Error: e.OAuthCode, ErrorDescription: e.Message})
		return
	}

	w.Header().Set("Content-Type", model.MediaType)
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(model.ErrorDocument{Errors: []model.ErrorObject{{
		Status: strconv.Itoa(e.Code),
		Title:  http.StatusText(e.Code),
		Detail: e.Message,
	}}})
}
