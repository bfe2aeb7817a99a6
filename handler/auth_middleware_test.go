package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"tailorpro/model"
	"tailorpro/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	issuer := service.NewTokenIssuer("test-secret", time.Minute)
	account := &model.Account{ID: "user-1", Name: "tailor", Roles: []string{"authenticated"}}
	token, err := issuer.GenerateAccessToken(account, "tailor-frontend")
	require.NoError(t, err)

	var seenUserID string
	protected := AuthMiddleware(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, _ = r.Context().Value(UserIDKey).(string)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + token, http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seenUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/jsonapi/node/measurement", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			protected.ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			if tc.status == http.StatusUnauthorized {
				assert.Equal(t, model.MediaType, rr.Header().Get("Content-Type"))
				var doc model.ErrorDocument
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
				require.Len(t, doc.Errors, 1)
				assert.Equal(t, "401", doc.Errors[0].Status)
				assert.Empty(t, seenUserID)
			} else {
				assert.Equal(t, "user-1", seenUserID)
			}
		})
	}

	t.Run("token signed with another secret", func(t *testing.T) {
		forged, err := service.NewTokenIssuer("other-secret", time.Minute).GenerateAccessToken(account, "tailor-frontend")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := service.NewTokenIssuer("test-secret", -time.Minute).GenerateAccessToken(account, "tailor-frontend")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAdminMiddleware(t *testing.T) {
	issuer := service.NewTokenIssuer("test-secret", time.Minute)
	chain := AuthMiddleware(issuer)(AdminMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	for name, tc := range map[string]struct {
		roles  []string
		status int
	}{
		"administrator": {[]string{"authenticated", model.RoleAdministrator}, http.StatusOK},
		"regular user":  {[]string{"authenticated"}, http.StatusForbidden},
	} {
		t.Run(name, func(t *testing.T) {
			token, err := issuer.GenerateAccessToken(&model.Account{ID: "u", Roles: tc.roles}, "tailor-frontend")
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/jsonapi/taxonomy_term/measurement_type", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()

			chain.ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
		})
	}
}
