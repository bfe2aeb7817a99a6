package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"tailorpro/logger"
	"tailorpro/model"
	"tailorpro/repository"
)

// IPasswordAuthenticator performs the OAuth password grant.
type IPasswordAuthenticator interface {
	PasswordGrant(ctx context.Context, username, password string) (model.Credential, error)
}

// AuthService manages the logged in session: login, registration, logout
// and the cached user profile.
type AuthService struct {
	api   ISender
	oauth IPasswordAuthenticator
	store repository.ITokenStore
}

func NewAuthService(api ISender, oauth IPasswordAuthenticator, store repository.ITokenStore) *AuthService {
	return &AuthService{api: api, oauth: oauth, store: store}
}

// Login exchanges the credentials for a token pair, stores it and caches the
// user's profile under auth_user. If the profile cannot be fetched the session
// is cleared again.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	log := logger.Log.WithField("username", req.Username)

	cred, err := s.oauth.PasswordGrant(ctx, req.Username, req.Password)
	if err != nil {
		log.WithError(err).Warn("Login rejected")
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if err := s.store.SetCredential(ctx, cred); err != nil {
		return nil, fmt.Errorf("store credential: %w", err)
	}

	user, err := s.fetchUser(ctx, req.Username)
	if err == nil {
		err = s.storeUser(ctx, user)
	}
	if err != nil {
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			log.WithError(clearErr).Error("Failed to clear session after incomplete login")
		}
		return nil, err
	}

	log.Info("Logged in")
	return user, nil
}

// Register creates a new user account. The account is not logged in.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	doc := model.Document[model.Resource]{Data: model.Resource{
		Type: model.UserResourceType,
		Attributes: map[string]any{
			"name":   req.Name,
			"mail":   req.Email,
			"pass":   req.Password,
			"status": true,
		},
	}}
	httpReq, err := jsonAPIRequest(http.MethodPost, "/jsonapi/user/user", doc)
	if err != nil {
		return nil, err
	}

	var created model.Document[model.Resource]
	if err := call(ctx, s.api, httpReq, &created); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	user := transformUser(created.Data)
	return &user, nil
}

// Logout clears the session. Logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	logger.Log.Info("Logged out")
	return nil
}

// CurrentUser returns the profile stored at login.
func (s *AuthService) CurrentUser(ctx context.Context) (*model.User, error) {
	raw, ok, err := repository.Lookup(ctx, s.store, repository.KeyAuthUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAuthenticated
	}
	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	return &user, nil
}

// IsAuthenticated reports whether an access token is stored.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	_, ok, err := repository.Lookup(ctx, s.store, repository.KeyAuthToken)
	return err == nil && ok
}

func (s *AuthService) HasRole(ctx context.Context, role string) bool {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return false
	}
	return user.HasRole(role)
}

func (s *AuthService) IsAdmin(ctx context.Context) bool {
	return s.HasRole(ctx, model.RoleAdministrator)
}

func (s *AuthService) fetchUser(ctx context.Context, username string) (*model.User, error) {
	req := get("/jsonapi/user/user")
	req.Query = url.Values{"filter[name]": {username}}

	var doc model.Document[[]model.Resource]
	if err := call(ctx, s.api, req, &doc); err != nil {
		return nil, fmt.Errorf("fetch user data: %w", err)
	}
	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("fetch user data: %w", ErrUserNotFound)
	}
	user := transformUser(doc.Data[0])
	return &user, nil
}

func (s *AuthService) storeUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Set(ctx, repository.KeyAuthUser, string(data)); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

func transformUser(res model.Resource) model.User {
	name := attributeString(res, "display_name")
	if name == "" {
		name = attributeString(res, "name")
	}
	user := model.User{
		ID:      res.ID,
		Name:    name,
		Email:   attributeString(res, "mail"),
		Roles:   []string{},
		Created: attributeString(res, "created"),
	}
	user.Status, _ = res.Attributes["status"].(bool)
	if roles, ok := res.Attributes["roles"].([]any); ok {
		for _, r := range roles {
			if role, ok := r.(string); ok {
				user.Roles = append(user.Roles, role)
			}
		}
	}
	return user
}
