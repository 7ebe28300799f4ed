package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/tastyshare/backend/internal/database"
	"github.com/pageza/tastyshare/backend/internal/models"
	"github.com/pageza/tastyshare/backend/internal/types"
	"gorm.io/gorm"
)

const tokenIssuer = "tastyshare"

// AuthService owns accounts and sessions
type AuthService struct {
	db        *gorm.DB
	sessions  SessionStore
	images    ImageStore
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *slog.Logger
}

func NewAuthService(db *gorm.DB, sessions SessionStore, images ImageStore, jwtSecret string, tokenTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		db:        db,
		sessions:  sessions,
		images:    images,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates a user with the default role. Uniqueness is enforced by
// the database at insert time.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hashed, err := HashPassword(password)
	if errors.Is(err, ErrPasswordTooLong) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "User registered", slog.Uint64("user_id", uint64(user.ID)))
	return &user, nil
}

// Authenticate returns the user when the credentials match, and nil for an
// unknown email or a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, legacy := CheckPassword(user.PasswordHash, password)
	if !ok {
		return nil, nil
	}

	if legacy {
		s.upgradeHash(ctx, &user, password)
	}
	return &user, nil
}

func (s *AuthService) upgradeHash(ctx context.Context, user *models.User, password string) {
	hashed, err := HashPassword(password)
	if err != nil {
		return
	}
	err = s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("password", hashed).Error
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to upgrade legacy password hash",
			slog.Uint64("user_id", uint64(user.ID)), slog.String("error", err.Error()))
		return
	}
	user.PasswordHash = hashed
}

// GetUser returns the user by id
func (s *AuthService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateProfile replaces the user's email and password. Every existing
// session of the user is revoked; the caller issues a fresh token.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, newEmail, newPassword string) (*models.User, error) {
	newEmail = strings.TrimSpace(newEmail)
	if newEmail == "" || newPassword == "" {
		return nil, ErrMissingFields
	}

	hashed, err := HashPassword(newPassword)
	if errors.Is(err, ErrPasswordTooLong) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"email":    newEmail,
			"password": hashed,
		})
	if result.Error != nil {
		if database.IsUniqueViolation(result.Error) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	if err := s.sessions.DeleteUser(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "Failed to revoke sessions after profile update",
			slog.Uint64("user_id", uint64(userID)), slog.String("error", err.Error()))
	}

	s.logger.InfoContext(ctx, "Profile updated", slog.Uint64("user_id", uint64(userID)))
	return s.GetUser(ctx, userID)
}

// DeleteAccount removes the user together with their recipes, favourites and
// reviews, and everything other users attached to those recipes. All rows go
// in one transaction; images are removed after commit.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	var imagePaths []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var recipes []models.Recipe
		if err := tx.Select("id", "image_path").Where("user_id = ?", userID).Find(&recipes).Error; err != nil {
			return err
		}
		recipeIDs := make([]uint, 0, len(recipes))
		for _, r := range recipes {
			recipeIDs = append(recipeIDs, r.ID)
			if r.ImagePath != "" {
				imagePaths = append(imagePaths, r.ImagePath)
			}
		}

		owned := tx.Where("user_id = ?", userID)
		if len(recipeIDs) > 0 {
			owned = tx.Where("user_id = ? OR recipe_id IN ?", userID, recipeIDs)
		}
		if err := owned.Delete(&models.Review{}).Error; err != nil {
			return err
		}

		owned = tx.Where("user_id = ?", userID)
		if len(recipeIDs) > 0 {
			owned = tx.Where("user_id = ? OR recipe_id IN ?", userID, recipeIDs)
		}
		if err := owned.Delete(&models.Favourite{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Recipe{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if err := s.sessions.DeleteUser(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "Failed to revoke sessions after account deletion",
			slog.Uint64("user_id", uint64(userID)), slog.String("error", err.Error()))
	}
	s.removeImages(ctx, imagePaths)

	s.logger.InfoContext(ctx, "Account deleted", slog.Uint64("user_id", uint64(userID)))
	return nil
}

func (s *AuthService) removeImages(ctx context.Context, paths []string) {
	if s.images == nil {
		return
	}
	for _, p := range paths {
		if err := s.images.Delete(ctx, p); err != nil {
			s.logger.WarnContext(ctx, "Failed to remove image", slog.String("path", p), slog.String("error", err.Error()))
		}
	}
}

// IssueToken starts a session for user and returns its signed token
func (s *AuthService) IssueToken(ctx context.Context, user *models.User) (string, error) {
	now := time.Now()
	sessionID := uuid.New().String()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	if err := s.sessions.Create(ctx, user.ID, sessionID, s.tokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken checks the signature, expiry and that the session is still live
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	live, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Logout ends the session identified by sessionID
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
