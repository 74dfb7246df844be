package repository

import (
	"sync"
)

// CredentialRepository maps a chat user id to a Gmail access credential.
// Absence is a normal state, never a fault. Last write wins under concurrent
// access; no conflict resolution beyond that is provided.
type CredentialRepository interface {
	Put(chatUserID, accessToken string) error
	Get(chatUserID string) (string, bool, error)
	Delete(chatUserID string) error
}

// memoryCredentialRepository is the default store. Credentials live only as
// long as the process; users re-authenticate after a restart.
type memoryCredentialRepository struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewMemoryCredentialRepository() CredentialRepository {
	return &memoryCredentialRepository{
		tokens: make(map[string]string),
	}
}

func (r *memoryCredentialRepository) Put(chatUserID, accessToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[chatUserID] = accessToken
	return nil
}

func (r *memoryCredentialRepository) Get(chatUserID string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.tokens[chatUserID]
	return token, ok, nil
}

func (r *memoryCredentialRepository) Delete(chatUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, chatUserID)
	return nil
}
