package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type userByEmailReader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type profileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}

type ProfileService struct {
	db          *pgxpool.Pool
	userRepo    userByEmailReader
	profileRepo profileReader
	storage     ObjectStorage
}

// NewProfileService accepts a nil storage; picture uploads are then refused.
func NewProfileService(db *pgxpool.Pool, userRepo userByEmailReader, profileRepo profileReader, storage ObjectStorage) *ProfileService {
	return &ProfileService{db: db, userRepo: userRepo, profileRepo: profileRepo, storage: storage}
}

// ownAccount resolves email to the caller's own account. An unknown email and
// another user's email both yield ErrForbidden.
func ownAccount(ctx context.Context, users userByEmailReader, actorID int64, email string) (*models.User, error) {
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if user.ID != actorID {
		return nil, ErrForbidden
	}
	return user, nil
}

// Get returns the caller's user and, when one exists, their profile. A user
// without a profile is not an error.
func (s *ProfileService) Get(ctx context.Context, actorID int64, email string) (*models.User, *models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil, ErrInvalidInput
	}
	user, err := ownAccount(ctx, s.userRepo, actorID, email)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, nil, nil
		}
		return nil, nil, err
	}
	return user, profile, nil
}

type SaveProfileInput struct {
	User    repository.UpdateUserInput
	Profile repository.UpsertProfileInput
}

// Save updates the user columns and upserts the profile in one transaction.
// Repeating the same input converges on the same single profile row. Only the
// account owner may save it.
func (s *ProfileService) Save(ctx context.Context, actorID int64, email string, input SaveProfileInput) (*models.User, *models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil, ErrInvalidInput
	}
	if _, err := ownAccount(ctx, s.userRepo, actorID, email); err != nil {
		return nil, nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	user, err := repository.NewUserRepository(tx).UpdateByEmail(ctx, email, input.User)
	if err != nil {
		return nil, nil, notFound(err, ErrUserNotFound)
	}
	profile, err := repository.NewProfileRepository(tx).Upsert(ctx, user.ID, input.Profile)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

var pictureExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SetPicture stores an uploaded image and points the profile at it. The previous
// picture is removed from storage once the profile has been updated.
func (s *ProfileService) SetPicture(ctx context.Context, userID int64, content []byte) (*models.Profile, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	if userID <= 0 || len(content) == 0 {
		return nil, ErrInvalidInput
	}
	contentType := http.DetectContentType(content)
	ext, ok := pictureExtensions[contentType]
	if !ok {
		return nil, ErrInvalidInput
	}

	var previous string
	current, err := s.profileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		if current.ProfilePic != nil {
			previous = *current.ProfilePic
		}
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, err
	}

	objectPath := fmt.Sprintf("profiles/%d/%s%s", userID, uuid.NewString(), ext)
	fileURL, err := s.storage.Upload(ctx, objectPath, content, contentType)
	if err != nil {
		return nil, err
	}

	profile, err := repository.NewProfileRepository(s.db).Upsert(ctx, userID, repository.UpsertProfileInput{ProfilePic: &fileURL})
	if err != nil {
		if delErr := s.storage.Delete(ctx, fileURL); delErr != nil {
			log.Warnf("failed to remove orphaned picture %s: %s", fileURL, delErr)
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if previous != "" && previous != fileURL {
		if err := s.storage.Delete(ctx, previous); err != nil {
			log.Warnf("failed to remove previous picture of user %d: %s", userID, err)
		}
	}
	return profile, nil
}
