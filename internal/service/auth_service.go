package service

import (
	"context"
	"time"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        config.AuthConfig
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, cfg config.AuthConfig) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorageUnavailable, "failed to check existing user", err)
	}
	if existing != nil {
		return nil, apperror.New(apperror.KindValidation, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperror.Wrap(apperror.KindStorageUnavailable, "failed to create user", err)
	}

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorageUnavailable, "failed to look up user", err)
	}
	// A missing user and a wrong password answer identically.
	if user == nil {
		return nil, apperror.New(apperror.KindUnauthenticated, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.New(apperror.KindUnauthenticated, "invalid credentials")
	}

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(s.cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: signedToken,
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			Username: user.Username,
		},
	}, nil
}
