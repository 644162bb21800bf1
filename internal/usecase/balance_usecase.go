package usecase

import (
	"fmt"

	"campus-market/internal/entity"
	"campus-market/internal/repo/persistent"
	"campus-market/pkg/logger"
)

type BalanceUseCase interface {
	GetBalance(userID string) (*entity.Balance, error)
	Withdraw(userID string, amount int64) (*entity.Balance, error)
}

type balanceUseCase struct {
	balanceRepo persistent.BalanceRepository
	logger      *logger.Logger
}

func NewBalanceUseCase(balanceRepo persistent.BalanceRepository, logger *logger.Logger) BalanceUseCase {
	return &balanceUseCase{
		balanceRepo: balanceRepo,
		logger:      logger,
	}
}

func (uc *balanceUseCase) GetBalance(userID string) (*entity.Balance, error) {
	balance, err := uc.balanceRepo.GetOrCreate(userID)
	if err != nil {
		uc.logger.Error("Failed to get balance: %v", err)
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

func (uc *balanceUseCase) Withdraw(userID string, amount int64) (*entity.Balance, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	withdrawn, err := uc.balanceRepo.TryWithdraw(userID, amount)
	if err != nil {
		uc.logger.Error("Failed to withdraw for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}
	if !withdrawn {
		return nil, fmt.Errorf("insufficient balance")
	}

	return uc.balanceRepo.GetOrCreate(userID)
}
