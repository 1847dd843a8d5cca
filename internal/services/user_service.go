package services

import (
	"errors"
	"mime/multipart"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/storage"
)

// userService handles registration, login and profile logic.
type userService struct {
	db     *gorm.DB
	images *storage.ImageStore
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, images *storage.ImageStore) UserServicer {
	return &userService{db: db, images: images}
}

// Register creates a user and their profile in a single database
// transaction. If an image is supplied it becomes the profile picture; the
// profile row exists either way. On any failure nothing is persisted.
func (s *userService) Register(username, email, password string, profilePic *multipart.FileHeader) (*models.User, *models.Profile, error) {
	if username == "" || email == "" || password == "" {
		return nil, nil, apperrors.WithFields(apperrors.ErrInvalidInput,
			map[string]string{"body": "username, email and password are required"})
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, nil, duplicateUsernameError()
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Store the image before opening the transaction; an orphaned file on a
	// failed registration is cleaned up below, an orphaned row is worse.
	var picPath string
	if profilePic != nil {
		picPath, err = s.images.Save(profilePic)
		if err != nil {
			return nil, nil, apperrors.WithFields(apperrors.ErrInvalidInput,
				map[string]string{"profile_pic": err.Error()})
		}
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		IsActive: true,
	}
	profile := &models.Profile{ProfilePic: picPath}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		_ = s.images.Remove(picPath)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, duplicateUsernameError()
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, profile, nil
}

func duplicateUsernameError() *apperrors.AppError {
	return apperrors.WithFields(apperrors.ErrDuplicateUsername,
		map[string]string{"username": "A user with this username already exists"})
}

// AttemptLogin verifies credentials and records the login time.
// Invalid username and invalid password are indistinguishable to the caller.
func (s *userService) AttemptLogin(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ? AND is_active = ?", username, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.LastLoginAt = &now

	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// StoreRefreshTokenHash pins the current refresh token (hashed) to the user,
// so refresh tokens are single-session and revocable.
func (s *userService) StoreRefreshTokenHash(userID, tokenHash string) error {
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("refresh_token_hash", tokenHash).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh token hash for a user.
func (s *userService) GetRefreshTokenHash(userID string) (string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}
	return user.RefreshTokenHash, nil
}

// GetProfile returns the user and their profile, creating the profile row
// if it does not exist yet. Repeated calls are idempotent.
func (s *userService) GetProfile(userID string) (*models.User, *models.Profile, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, nil, err
	}

	var profile models.Profile
	if err := s.db.Where(models.Profile{UserID: userID}).FirstOrCreate(&profile).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, &profile, nil
}

// UpdateProfilePicture stores a new profile picture and replaces the old
// one. The previous file is removed only after the row update succeeds.
func (s *userService) UpdateProfilePicture(userID string, profilePic *multipart.FileHeader) (*models.Profile, error) {
	_, profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	picPath, err := s.images.Save(profilePic)
	if err != nil {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput,
			map[string]string{"profile_pic": err.Error()})
	}

	oldPath := profile.ProfilePic
	if err := s.db.Model(profile).Update("profile_pic", picPath).Error; err != nil {
		_ = s.images.Remove(picPath)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	profile.ProfilePic = picPath

	if oldPath != "" {
		_ = s.images.Remove(oldPath)
	}

	return profile, nil
}

// ProfilePicURL resolves a profile's picture to its public URL, or the
// empty string when no picture is set.
func (s *userService) ProfilePicURL(profile *models.Profile) string {
	if profile == nil {
		return ""
	}
	return s.images.URL(profile.ProfilePic)
}
