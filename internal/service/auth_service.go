package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"quill/internal/model/auth"
	"quill/internal/pkg/id"
	"quill/internal/pkg/jwt"
	"quill/internal/pkg/password"
	"quill/internal/pkg/storage"
	authrepo "quill/internal/repository/auth"
)

// AuthService implements registration, login and profile management
type AuthService struct {
	userRepo *authrepo.UserRepo
	jwt      *jwt.JWT
	storage  storage.Storage // avatar uploads, may be nil
}

// NewAuthService creates the auth service
func NewAuthService(userRepo *authrepo.UserRepo, jwtSecret string, tokenExpiry time.Duration, store storage.Storage) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt.NewJWT(jwtSecret, tokenExpiry),
		storage:  store,
	}
}

// TokenUtil exposes the token verifier for the auth middleware
func (s *AuthService) TokenUtil() *jwt.JWT {
	return s.jwt
}

// Register creates an account and returns it with a fresh bearer token.
// Accounts default to the reader role; admin cannot be self-assigned and
// is downgraded to reader.
func (s *AuthService) Register(ctx context.Context, username, email, pwd, role string) (*auth.User, string, error) {
	if err := validateUsername(username); err != nil {
		return nil, "", err
	}
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validatePassword(pwd); err != nil {
		return nil, "", err
	}

	userRole := auth.UserRole(role)
	switch {
	case role == "" || userRole == auth.RoleAdmin:
		userRole = auth.RoleReader
	case !userRole.IsValid():
		return nil, "", ValidationError("Role must be reader or author")
	}

	if existing, _ := s.userRepo.FindByUsername(ctx, username); existing != nil {
		return nil, "", ErrUsernameTaken
	}
	if existing, _ := s.userRepo.FindByEmail(ctx, email); existing != nil {
		return nil, "", ErrEmailTaken
	}

	hashed, err := password.Hash(pwd)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, "", errors.New("failed to hash password")
	}

	user := &auth.User{
		ID:       id.New(),
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     userRole,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return nil, "", errors.New("failed to create user")
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")
		return nil, "", errors.New("failed to generate token")
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh bearer
// token. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, pwd string) (*auth.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !password.Verify(pwd, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")
		return nil, "", errors.New("failed to generate token")
	}

	return user, token, nil
}

// GetMe loads the caller's account
func (s *AuthService) GetMe(ctx context.Context, userID string) (*auth.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ProfileUpdate carries the optional profile fields; nil means unchanged
type ProfileUpdate struct {
	Username *string
	Bio      *string
	Avatar   *string
}

// UpdateProfile applies a partial profile update to the caller's own
// account and returns the updated user
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*auth.User, error) {
	set := bson.M{}

	if upd.Username != nil {
		if err := validateUsername(*upd.Username); err != nil {
			return nil, err
		}
		if existing, _ := s.userRepo.FindByUsername(ctx, *upd.Username); existing != nil && existing.ID != userID {
			return nil, ErrUsernameTaken
		}
		set["username"] = *upd.Username
	}
	if upd.Bio != nil {
		if err := validateBio(*upd.Bio); err != nil {
			return nil, err
		}
		set["bio"] = *upd.Bio
	}
	if upd.Avatar != nil {
		set["avatar"] = *upd.Avatar
	}

	if len(set) > 0 {
		if err := s.userRepo.Update(ctx, userID, bson.M{"$set": set}); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("failed to update profile")
			return nil, errors.New("failed to update profile")
		}
	}

	return s.GetMe(ctx, userID)
}

// ChangePassword swaps the caller's password after verifying the current
// one
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !password.Verify(current, user.Password) {
		return ValidationError("Current password is incorrect")
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	hashed, err := password.Hash(next)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return errors.New("failed to hash password")
	}

	return s.userRepo.Update(ctx, userID, bson.M{"$set": bson.M{"password": hashed}})
}

// allowed avatar content types keyed by file extension
var avatarExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// UploadAvatar stores an avatar image and points the caller's profile at
// its public URL
func (s *AuthService) UploadAvatar(ctx context.Context, userID, filename string, data io.Reader) (string, error) {
	if s.storage == nil {
		return "", ErrStorageUnavailable
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := avatarExts[ext]
	if !ok {
		return "", ValidationError("Avatar must be a jpg, png, gif or webp image")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", ErrUserNotFound
	}

	key := fmt.Sprintf("avatars/%s%s", userID, ext)
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to upload avatar")
		return "", errors.New("failed to upload avatar")
	}

	if err := s.userRepo.Update(ctx, userID, bson.M{"$set": bson.M{"avatar": url}}); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to save avatar URL")
		return "", errors.New("failed to save avatar")
	}

	// An upload under a new extension keys a new object; the old one is
	// unreachable after the profile points at the new URL. Best-effort.
	if oldExt := strings.ToLower(filepath.Ext(user.Avatar)); oldExt != "" && oldExt != ext {
		if _, managed := avatarExts[oldExt]; managed {
			oldKey := fmt.Sprintf("avatars/%s%s", userID, oldExt)
			if err := s.storage.Delete(ctx, oldKey); err != nil {
				log.Warn().Err(err).Str("user_id", userID).Str("key", oldKey).Msg("failed to delete old avatar")
			}
		}
	}

	return url, nil
}
