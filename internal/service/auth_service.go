package service

import (
	"errors"

	"study_diagnostic_backend/internal/config"
	"study_diagnostic_backend/internal/model"
	"study_diagnostic_backend/internal/repository"
	"study_diagnostic_backend/internal/util"
	"study_diagnostic_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Users *repository.UserRepository
	Cfg   *config.Config
}

func NewAuthService(users *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{Users: users, Cfg: cfg}
}

func (s *AuthService) Register(name, email, password string) (*model.User, error) {
	if _, err := s.Users.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}

	logger.Log.Info("User registered", zap.Uint("userId", user.ID), zap.String("email", email))
	return user, nil
}

// Login validates credentials and issues a JWT. Wrong email and wrong
// password both surface as ErrBadCredentials.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.Users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, util.ErrBadCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if user.Disabled {
		return "", nil, util.ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrBadCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	if err := s.Users.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("Failed to record last login", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return token, user, nil
}
