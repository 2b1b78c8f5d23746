package repository

import (
	"testing"
	"time"

	"github.com/dkim/authapi-backend/internal/app/model"
	"github.com/dkim/authapi-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupResetRequestTest(t *testing.T) ResetRequestRepository {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	return NewResetRequestRepository(testDB)
}

func TestResetRequestRepository_Create(t *testing.T) {
	repo := setupResetRequestTest(t)

	userID := uint(1)
	err := repo.Create(&model.PasswordResetRequest{
		Email:  "test@example.com",
		UserID: &userID,
	})
	require.NoError(t, err)

	// Unknown email: no user reference
	err = repo.Create(&model.PasswordResetRequest{
		Email: "nobody@example.com",
	})
	require.NoError(t, err)
}

func TestResetRequestRepository_CountSince(t *testing.T) {
	repo := setupResetRequestTest(t)

	for i := 0; i < 3; i++ {
		err := repo.Create(&model.PasswordResetRequest{Email: "test@example.com"})
		require.NoError(t, err)
	}

	count, err := repo.CountSince("test@example.com", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountSince("other@example.com", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestResetRequestRepository_DeleteOlderThan(t *testing.T) {
	repo := setupResetRequestTest(t)

	err := repo.Create(&model.PasswordResetRequest{Email: "test@example.com"})
	require.NoError(t, err)

	// Nothing is older than a cutoff in the past
	deleted, err := repo.DeleteOlderThan(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	// A future cutoff sweeps the row
	deleted, err = repo.DeleteOlderThan(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
