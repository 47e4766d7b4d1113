package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pageturn/internal/apperr"
	"pageturn/internal/dto"
	"pageturn/internal/model"
	"pageturn/internal/repository"
	"pageturn/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*model.User, string, error)
}

type authServiceImpl struct {
	tokens   *token.Manager
	userRepo repository.UserRepository
}

func NewAuthService(tokens *token.Manager, userRepo repository.UserRepository) AuthService {
	return &authServiceImpl{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", apperr.Validation("Email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("store user in db: %w", err)
	}

	tok, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, tok, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Auth("Invalid email or password")
		}
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", apperr.Auth("Invalid email or password")
	}

	tok, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, tok, nil
}
