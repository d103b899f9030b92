package services

import (
	"context"
	"testing"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileGetHidesWhetherAnEmailIsRegistered(t *testing.T) {
	users := &stubUsers{byID: map[int64]*models.User{
		3: {ID: 3, Email: "ann@example.com"},
		4: {ID: 4, Email: "bob@example.com"},
	}}
	profiles := &stubProfiles{byUser: map[int64]*models.Profile{3: {ID: 30, UserID: 3}}}
	service := NewProfileService(nil, users, profiles, nil)
	ctx := context.Background()

	_, _, err := service.Get(ctx, 3, "bob@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
	_, _, err = service.Get(ctx, 3, "ghost@example.com")
	assert.ErrorIs(t, err, ErrForbidden)
	_, _, err = service.Get(ctx, 3, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	user, profile, err := service.Get(ctx, 3, " ANN@example.com ")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	require.NotNil(t, profile)
	assert.Equal(t, int64(30), profile.ID)

	user, profile, err = service.Get(ctx, 4, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(4), user.ID)
	assert.Nil(t, profile)
}

func TestProfileSaveRefusesUnknownAndForeignEmails(t *testing.T) {
	users := &stubUsers{byID: map[int64]*models.User{4: {ID: 4, Email: "bob@example.com"}}}
	service := NewProfileService(nil, users, &stubProfiles{}, nil)

	for _, email := range []string{"bob@example.com", "ghost@example.com"} {
		_, _, err := service.Save(context.Background(), 3, email, SaveProfileInput{})
		assert.ErrorIs(t, err, ErrForbidden, email)
	}
}
