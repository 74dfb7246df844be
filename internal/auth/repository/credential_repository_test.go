package repository_test

import (
	"sync"
	"testing"

	"embox-backend/internal/auth/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryPutGet(t *testing.T) {
	repo := repository.NewMemoryCredentialRepository()

	_, ok, err := repo.Get("U1")
	require.NoError(t, err)
	assert.False(t, ok, "absence is a normal state")

	require.NoError(t, repo.Put("U1", "token-1"))

	token, ok, err := repo.Get("U1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-1", token)
}

func TestMemoryRepositoryOverwrite(t *testing.T) {
	repo := repository.NewMemoryCredentialRepository()

	require.NoError(t, repo.Put("U1", "token-old"))
	require.NoError(t, repo.Put("U1", "token-new"))

	token, ok, err := repo.Get("U1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-new", token)
}

func TestMemoryRepositoryDelete(t *testing.T) {
	repo := repository.NewMemoryCredentialRepository()

	require.NoError(t, repo.Put("U1", "token-1"))
	require.NoError(t, repo.Delete("U1"))

	_, ok, err := repo.Get("U1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent credential is not an error.
	require.NoError(t, repo.Delete("U1"))
}

func TestMemoryRepositoryConcurrentAccess(t *testing.T) {
	repo := repository.NewMemoryCredentialRepository()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Put("U1", "token")
			_, _, _ = repo.Get("U1")
		}()
	}
	wg.Wait()

	token, ok, err := repo.Get("U1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token", token)
}
