package services

import (
	"context"
	"errors"
	"strings"

	"klarfix/internal/auth"
	"klarfix/internal/logger"
	"klarfix/internal/models"
	"klarfix/internal/repositories"
	"klarfix/internal/services/dto"
	"klarfix/internal/validator"
	"klarfix/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Signup(ctx context.Context, db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResult, error)
	CurrentUser(ctx context.Context, db *gorm.DB, userID uint) (*models.User, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// normalizeUsername trims and lowercases; usernames are e-mail addresses.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (s *AuthServiceImpl) Signup(ctx context.Context, db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	if !req.Role.CanSignUp() {
		return nil, apperrors.ValidationError(map[string]string{"role": "Invalid role"})
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	username := normalizeUsername(req.Username)

	exists, err := s.userRepo.ExistsByUsername(db, username)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrUserAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		Bio:          req.Bio,
		Skills:       models.Skills(req.Skills),
		PhoneNumber:  validator.NormalizePhone(req.PhoneNumber),
	}

	if err := s.userRepo.Create(db, user); err != nil {
		// A concurrent signup may win the unique index after the check above.
		return nil, translate(err, repositories.ErrUserAlreadyExists, apperrors.ErrUserAlreadyExists)
	}

	logger.CtxInfo(ctx, "user signed up", "user_id", user.ID, "role", user.Role)

	return &dto.SignupResponse{
		Message: "User created successfully",
		UserID:  user.ID,
	}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResult, error) {
	user, err := s.userRepo.FindByUsername(db, normalizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxWarn(ctx, "login failed: unknown username")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "login failed: wrong password", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)

	return &dto.LoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AuthServiceImpl) CurrentUser(ctx context.Context, db *gorm.DB, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		// A valid token for a deleted account is treated as unauthenticated.
		return nil, translate(err, repositories.ErrUserNotFound, apperrors.ErrInvalidToken)
	}
	return user, nil
}
