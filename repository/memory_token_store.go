package repository

import (
	"context"
	"sync"
	"tailorpro/model"
)

// MemoryTokenStore keeps the session in process memory.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{values: make(map[string]string)}
}

func (s *MemoryTokenStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *MemoryTokenStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryTokenStore) SetCredential(_ context.Context, cred model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[KeyAuthToken] = cred.AccessToken
	if cred.RefreshToken == "" {
		delete(s.values, KeyRefreshToken)
	} else {
		s.values[KeyRefreshToken] = cred.RefreshToken
	}
	return nil
}

func (s *MemoryTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range SessionKeys {
		delete(s.values, key)
	}
	return nil
}
