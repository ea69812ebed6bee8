package services

import (
	"context"
	"errors"
	"time"

	"packpall-backend/models"
	"packpall-backend/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService defines the interface for registration and login.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (string, *ServiceError)
	Login(ctx context.Context, req *models.LoginRequest) (string, *ServiceError)
	CurrentUser(ctx context.Context, userID string) (*models.UserRef, *ServiceError)
}

type authServiceImpl struct {
	users  repository.UserRepository
	tokens *TokenService
	logger *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *TokenService, logger *zap.Logger) AuthService {
	return &authServiceImpl{users: users, tokens: tokens, logger: logger}
}

// Register creates an account and returns a session token.
func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (string, *ServiceError) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return "", &ServiceError{StatusCode: 400, Message: "User already exists"}
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to check existing user", zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", &ServiceError{StatusCode: 500, Message: "Failed to hash password"}
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can pass the lookup above; the unique
		// email index rejects the second insert.
		if mongo.IsDuplicateKeyError(err) {
			return "", &ServiceError{StatusCode: 400, Message: "User already exists"}
		}
		s.logger.Error("Failed to insert user", zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", &ServiceError{StatusCode: 500, Message: "Failed to generate token"}
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return token, nil
}

// Login verifies credentials and returns a session token.
func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (string, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", &ServiceError{StatusCode: 404, Message: "User not found"}
	}
	if err != nil {
		s.logger.Error("Failed to look up user", zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Server error"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", &ServiceError{StatusCode: 500, Message: "Failed to generate token"}
	}
	return token, nil
}

// CurrentUser resolves the token subject to its public profile.
func (s *authServiceImpl) CurrentUser(ctx context.Context, userID string) (*models.UserRef, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
	}
	if err != nil {
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Server error"}
	}
	ref := user.Ref()
	return &ref, nil
}
