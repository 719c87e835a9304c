package user

import (
	"context"
	"strings"

	"glamour-be/internal/auth"
	"glamour-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, name, email, password string) AuthResult
	Login(ctx context.Context, email, password string) AuthResult
	GetUser(ctx context.Context, id string) (User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, password string) AuthResult {
	log := logger.FromCtx(ctx)

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return AuthFailure{Err: err}
	}

	u, err := s.repo.Create(ctx, name, email, hashed, string(auth.RoleUser))
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		if strings.Contains(err.Error(), "users_email_key") {
			return AuthFailure{Err: ErrEmailExists}
		}
		return AuthFailure{Err: err}
	}

	token, err := auth.GenerateJWT(u.ID, u.Email, u.Role)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return AuthFailure{Err: err}
	}

	log.Info("register completed",
		zap.String("user_id", u.ID),
		zap.String("email", email),
	)
	return AuthSuccess{User: u, Token: token}
}

func (s *service) Login(ctx context.Context, email, password string) AuthResult {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return AuthFailure{Err: ErrInvalidCredentials}
	}

	if !auth.CheckPasswordHash(password, u.Password) {
		return AuthFailure{Err: ErrInvalidCredentials}
	}

	token, err := auth.GenerateJWT(u.ID, u.Email, u.Role)
	if err != nil {
		return AuthFailure{Err: err}
	}
	return AuthSuccess{User: u, Token: token}
}

func (s *service) GetUser(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}
