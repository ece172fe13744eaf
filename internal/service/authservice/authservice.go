package authservice

import (
	"context"
	"errors"
	"time"

	"github.com/imelnikov/transferhub/internal/domain"
	"github.com/imelnikov/transferhub/pkg/auth"
	"go.uber.org/zap"
)

//go:generate mockgen -source=authservice.go -destination=authservice_mock.go -package=authservice

type Repo interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

const tokenLifetime = 15 * time.Minute

type Service struct {
	userRepo          Repo
	hashService       auth.HashServiceInterface
	jwtService        auth.JWTServiceInterface
	balanceCountLimit int
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, balanceCountLimit int) *Service {
	return &Service{
		userRepo:          repo,
		hashService:       hashService,
		jwtService:        jwtService,
		balanceCountLimit: balanceCountLimit,
	}
}

func (s *Service) Register(ctx context.Context, username, telegramUsername, password string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("username", username))
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}

	user := &domain.User{
		Username:          username,
		TelegramUsername:  telegramUsername,
		PasswordHash:      hashedPassword,
		Enabled:           true,
		BalanceCountLimit: s.balanceCountLimit,
		Roles:             []string{"USER"},
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("username", username))
	return newUser, nil
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil || user == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, errors.New("invalid credentials")
	}
	if !user.Enabled {
		return nil, errors.New("invalid credentials")
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.String("username", username))
		return nil, errors.New("invalid credentials")
	}
	zap.L().Info("user successfully authenticated", zap.String("username", username))
	return user, nil
}

func (s *Service) GenerateToken(userID int, username string) (string, error) {
	expirationTime := time.Now().Add(tokenLifetime)

	token, err := s.jwtService.GenerateJWT(userID, username, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}
