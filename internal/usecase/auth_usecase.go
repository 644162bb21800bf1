package usecase

import (
	"fmt"

	"campus-market/internal/entity"
	"campus-market/internal/repo/persistent"
	"campus-market/pkg/jwt"
	"campus-market/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUseCase interface {
	Register(email, username, password, campus string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetProfile(userID string) (*entity.User, error)
	UpdateProfile(userID, username, campus string) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	logger     *logger.Logger
}

func NewAuthUseCase(userRepo persistent.UserRepository, jwtService *jwt.Service, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(email, username, password, campus string) (*entity.User, string, error) {
	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, "", fmt.Errorf("email already registered")
	} else if err != gorm.ErrRecordNotFound {
		uc.logger.Error("Failed to check existing user: %v", err)
		return nil, "", fmt.Errorf("failed to register: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := uc.userRepo.Create(&entity.User{
		Email:    email,
		Username: username,
		Password: string(hashed),
		Campus:   campus,
		Role:     "student",
	})
	if err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to register: %w", err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if !user.IsActive {
		return nil, "", fmt.Errorf("account is deactivated")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

func (uc *authUseCase) GetProfile(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

func (uc *authUseCase) UpdateProfile(userID, username, campus string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if username != "" {
		user.Username = username
	}
	if campus != "" {
		user.Campus = campus
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update profile: %v", err)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}
