package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"tailorpro/model"
	"tailorpro/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct{ mock.Mock }

func (m *mockSender) Send(ctx context.Context, req *Request) (*Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*Response)
	return resp, args.Error(1)
}

type mockPasswordAuthenticator struct{ mock.Mock }

func (m *mockPasswordAuthenticator) PasswordGrant(ctx context.Context, username, password string) (model.Credential, error) {
	args := m.Called(username, password)
	return args.Get(0).(model.Credential), args.Error(1)
}

func jsonResponse(status int, body string) *Response {
	return &Response{StatusCode: status, Header: http.Header{}, Body: []byte(body)}
}

func requestTo(method, path string) interface{} {
	return mock.MatchedBy(func(r *Request) bool { return r.Method == method && r.Path == path })
}

const tailorUserList = `{"data":[{"type":"user--user","id":"2c1a4f0e-7b8a-4f0b-9a51-2d5e0c7b9f10","attributes":{"name":"tailor","display_name":"Tailor Khan","mail":"tailor@example.com","roles":["authenticated","administrator"],"created":"2024-01-02T10:00:00+00:00","status":true}}]}`

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		store := repository.NewMemoryTokenStore()
		oauth := new(mockPasswordAuthenticator)
		api := new(mockSender)
		oauth.On("PasswordGrant", "tailor", "s3cret").Return(model.Credential{AccessToken: "A1", RefreshToken: "R1"}, nil)
		api.On("Send", mock.MatchedBy(func(r *Request) bool {
			return r.Path == "/jsonapi/user/user" && r.Query.Get("filter[name]") == "tailor"
		})).Return(jsonResponse(http.StatusOK, tailorUserList), nil)

		svc := NewAuthService(api, oauth, store)
		user, err := svc.Login(ctx, model.LoginRequest{Username: "tailor", Password: "s3cret"})

		require.NoError(t, err)
		assert.Equal(t, "Tailor Khan", user.Name)
		assert.Equal(t, "tailor@example.com", user.Email)
		assert.True(t, user.Status)

		access, _ := store.Get(ctx, repository.KeyAuthToken)
		refresh, _ := store.Get(ctx, repository.KeyRefreshToken)
		assert.Equal(t, "A1", access)
		assert.Equal(t, "R1", refresh)

		current, err := svc.CurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, user, current)
		assert.True(t, svc.IsAuthenticated(ctx))
		assert.True(t, svc.IsAdmin(ctx))
		assert.False(t, svc.HasRole(ctx, "tailor"))
		oauth.AssertExpectations(t)
		api.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		oauth := new(mockPasswordAuthenticator)
		svc := NewAuthService(new(mockSender), oauth, repository.NewMemoryTokenStore())

		_, err := svc.Login(ctx, model.LoginRequest{Username: "tailor"})

		var validationErr *ValidationError
		assert.True(t, errors.As(err, &validationErr))
		oauth.AssertNotCalled(t, "PasswordGrant", mock.Anything, mock.Anything)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		store := repository.NewMemoryTokenStore()
		oauth := new(mockPasswordAuthenticator)
		oauth.On("PasswordGrant", "tailor", "wrong").
			Return(model.Credential{}, &APIError{StatusCode: http.StatusBadRequest, Message: "The user credentials were incorrect."})
		svc := NewAuthService(new(mockSender), oauth, store)

		_, err := svc.Login(ctx, model.LoginRequest{Username: "tailor", Password: "wrong"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "The user credentials were incorrect.")
		assert.False(t, svc.IsAuthenticated(ctx))
	})

	t.Run("profile not found clears the session", func(t *testing.T) {
		store := repository.NewMemoryTokenStore()
		oauth := new(mockPasswordAuthenticator)
		api := new(mockSender)
		oauth.On("PasswordGrant", "tailor", "s3cret").Return(model.Credential{AccessToken: "A1", RefreshToken: "R1"}, nil)
		api.On("Send", requestTo(http.MethodGet, "/jsonapi/user/user")).Return(jsonResponse(http.StatusOK, `{"data":[]}`), nil)
		svc := NewAuthService(api, oauth, store)

		_, err := svc.Login(ctx, model.LoginRequest{Username: "tailor", Password: "s3cret"})

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.False(t, svc.IsAuthenticated(ctx))
		_, err = store.Get(ctx, repository.KeyRefreshToken)
		assert.ErrorIs(t, err, repository.ErrKeyNotFound)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := new(mockSender)
		api.On("Send", mock.MatchedBy(func(r *Request) bool {
			if r.Method != http.MethodPost || r.Path != "/jsonapi/user/user" {
				return false
			}
			var doc model.Document[model.Resource]
			if err := json.Unmarshal(r.Body, &doc); err != nil {
				return false
			}
			return doc.Data.Type == model.UserResourceType &&
				doc.Data.Attributes["name"] == "newtailor" &&
				doc.Data.Attributes["mail"] == "new@example.com" &&
				doc.Data.Attributes["pass"] == "password1"
		})).Return(jsonResponse(http.StatusCreated,
			`{"data":{"type":"user--user","id":"9b0f3c2e-1d4a-4e6f-8a7b-3c2d1e0f9a8b","attributes":{"name":"newtailor","mail":"new@example.com","roles":["authenticated"],"status":true}}}`), nil)
		svc := NewAuthService(api, new(mockPasswordAuthenticator), repository.NewMemoryTokenStore())

		user, err := svc.Register(ctx, model.RegisterRequest{
			Name: "newtailor", Email: "new@example.com", Password: "password1", ConfirmPassword: "password1",
		})

		require.NoError(t, err)
		assert.Equal(t, "newtailor", user.Name)
		assert.Equal(t, []string{"authenticated"}, user.Roles)
		assert.False(t, svc.IsAuthenticated(ctx))
		api.AssertExpectations(t)
	})

	t.Run("passwords differ", func(t *testing.T) {
		api := new(mockSender)
		svc := NewAuthService(api, new(mockPasswordAuthenticator), repository.NewMemoryTokenStore())

		_, err := svc.Register(ctx, model.RegisterRequest{
			Name: "newtailor", Email: "new@example.com", Password: "password1", ConfirmPassword: "password2",
		})

		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "ConfirmPassword", validationErr.Fields[0].Field())
		api.AssertNotCalled(t, "Send", mock.Anything)
	})

	t.Run("server rejects", func(t *testing.T) {
		api := new(mockSender)
		api.On("Send", mock.Anything).Return(jsonResponse(http.StatusUnprocessableEntity,
			`{"errors":[{"status":"422","title":"Unprocessable Entity","detail":"name: The username newtailor is already taken."}]}`), nil)
		svc := NewAuthService(api, new(mockPasswordAuthenticator), repository.NewMemoryTokenStore())

		_, err := svc.Register(ctx, model.RegisterRequest{
			Name: "newtailor", Email: "new@example.com", Password: "password1", ConfirmPassword: "password1",
		})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Contains(t, apiErr.Message, "already taken")
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryTokenStore()
	require.NoError(t, store.SetCredential(ctx, model.Credential{AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, store.Set(ctx, repository.KeyAuthUser, `{"name":"tailor"}`))
	svc := NewAuthService(new(mockSender), new(mockPasswordAuthenticator), store)

	require.NoError(t, svc.Logout(ctx))
	require.NoError(t, svc.Logout(ctx))

	assert.False(t, svc.IsAuthenticated(ctx))
	_, err := svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, svc.IsAdmin(ctx))
}
