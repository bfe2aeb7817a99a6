package repository

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"tailorpro/logger"
	"tailorpro/model"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user name or email already taken")
	ErrInvalidCredential = errors.New("invalid username or password")
)

// UserRepository is the stand-in server's user table.
type UserRepository struct {
	mu      sync.RWMutex
	users   []*model.Account
	nextUID int
	cost    int
}

// NewUserRepository creates an empty repository. cost is the bcrypt cost;
// zero selects bcrypt.DefaultCost.
func NewUserRepository(cost int) *UserRepository {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserRepository{nextUID: 1, cost: cost}
}

// CreateUser hashes the password and stores a new active account.
func (r *UserRepository) CreateUser(name, email, password string, roles []string) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{"name": name, "email": email})

	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Name, name) || strings.EqualFold(u.Email, email) {
			return nil, ErrUserExists
		}
	}

	account := &model.Account{
		ID:           uuid.NewString(),
		UID:          r.nextUID,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        append([]string{"authenticated"}, roles...),
		Status:       true,
		CreatedAt:    time.Now().UTC(),
	}
	r.nextUID++
	r.users = append(r.users, account)
	log.WithField("uid", account.UID).Info("User created")
	return account, nil
}

// Authenticate checks a name/password pair.
func (r *UserRepository) Authenticate(name, password string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Name == name && u.Status {
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
				return nil, ErrInvalidCredential
			}
			return u, nil
		}
	}
	return nil, ErrInvalidCredential
}

// GetByID returns the account with the given UUID.
func (r *UserRepository) GetByID(id string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

// List returns the accounts whose attributes equal every filter value.
// Supported filter fields are name, mail and drupal_internal__uid.
func (r *UserRepository) List(filter map[string]string) []*model.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Account
	for _, u := range r.users {
		if matchesUser(u, filter) {
			out = append(out, u)
		}
	}
	return out
}

func matchesUser(u *model.Account, filter map[string]string) bool {
	for field, want := range filter {
		var got string
		switch field {
		case "name":
			got = u.Name
		case "mail":
			got = u.Email
		case "drupal_internal__uid":
			got = strconv.Itoa(u.UID)
		default:
			return false
		}
		if got != want {
			return false
		}
	}
	return true
}
