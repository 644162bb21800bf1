package usecase

import (
	"fmt"

	"campus-market/internal/entity"
	"campus-market/internal/repo/persistent"
	"campus-market/pkg/logger"
)

type ClubUseCase interface {
	CreateClub(club *entity.Club) (*entity.Club, error)
	GetClub(id string) (*entity.Club, error)
	ListClubs(campus string, limit, offset int) ([]*entity.Club, error)
	UpdateClub(userID string, club *entity.Club) (*entity.Club, error)
	DeleteClub(userID, clubID string) error
	JoinClub(clubID, userID string) error
	LeaveClub(clubID, userID string) error
	GetMembers(clubID string) ([]*entity.ClubMember, error)
}

type clubUseCase struct {
	clubRepo persistent.ClubRepository
	logger   *logger.Logger
}

func NewClubUseCase(clubRepo persistent.ClubRepository, logger *logger.Logger) ClubUseCase {
	return &clubUseCase{
		clubRepo: clubRepo,
		logger:   logger,
	}
}

func (uc *clubUseCase) CreateClub(club *entity.Club) (*entity.Club, error) {
	created, err := uc.clubRepo.Create(club)
	if err != nil {
		uc.logger.Error("Failed to create club: %v", err)
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	return created, nil
}

func (uc *clubUseCase) GetClub(id string) (*entity.Club, error) {
	club, err := uc.clubRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	return club, nil
}

func (uc *clubUseCase) ListClubs(campus string, limit, offset int) ([]*entity.Club, error) {
	clubs, err := uc.clubRepo.List(campus, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

func (uc *clubUseCase) UpdateClub(userID string, club *entity.Club) (*entity.Club, error) {
	existing, err := uc.clubRepo.GetByID(club.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	if existing.OwnerID != userID {
		return nil, fmt.Errorf("not the owner of this club")
	}

	if club.Name == "" {
		club.Name = existing.Name
	}
	if club.Description == "" {
		club.Description = existing.Description
	}

	if err := uc.clubRepo.Update(club); err != nil {
		uc.logger.Error("Failed to update club: %v", err)
		return nil, fmt.Errorf("failed to update club: %w", err)
	}

	return uc.clubRepo.GetByID(club.ID)
}

func (uc *clubUseCase) DeleteClub(userID, clubID string) error {
	existing, err := uc.clubRepo.GetByID(clubID)
	if err != nil {
		return fmt.Errorf("failed to get club: %w", err)
	}
	if existing.OwnerID != userID {
		return fmt.Errorf("not the owner of this club")
	}

	if err := uc.clubRepo.Delete(clubID); err != nil {
		return fmt.Errorf("failed to delete club: %w", err)
	}
	return nil
}

func (uc *clubUseCase) JoinClub(clubID, userID string) error {
	if _, err := uc.clubRepo.GetByID(clubID); err != nil {
		return fmt.Errorf("club not found")
	}

	isMember, err := uc.clubRepo.IsMember(clubID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return fmt.Errorf("already a member")
	}

	if err := uc.clubRepo.AddMember(clubID, userID); err != nil {
		return fmt.Errorf("failed to join club: %w", err)
	}
	return nil
}

func (uc *clubUseCase) LeaveClub(clubID, userID string) error {
	club, err := uc.clubRepo.GetByID(clubID)
	if err != nil {
		return fmt.Errorf("club not found")
	}
	if club.OwnerID == userID {
		return fmt.Errorf("owner cannot leave their own club")
	}

	if err := uc.clubRepo.RemoveMember(clubID, userID); err != nil {
		return fmt.Errorf("failed to leave club: %w", err)
	}
	return nil
}

func (uc *clubUseCase) GetMembers(clubID string) ([]*entity.ClubMember, error) {
	members, err := uc.clubRepo.GetMembers(clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	return members, nil
}
