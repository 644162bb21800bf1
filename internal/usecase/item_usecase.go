package usecase

import (
	"fmt"
	"mime/multipart"

	"campus-market/internal/entity"
	"campus-market/internal/repo/persistent"
	"campus-market/pkg/logger"
	"campus-market/pkg/s3"

	"github.com/google/uuid"
)

type ItemUseCase interface {
	CreateItem(item *entity.Item) (*entity.Item, error)
	GetItem(id string) (*entity.Item, error)
	ListItems(filter persistent.ItemFilter, limit, offset int) ([]*entity.Item, error)
	UpdateItem(userID string, item *entity.Item) (*entity.Item, error)
	RemoveItem(userID, itemID string) error
	UploadImage(userID, itemID string, file multipart.File, contentType string) (string, error)
}

type itemUseCase struct {
	itemRepo persistent.ItemRepository
	clubRepo persistent.ClubRepository
	s3Client *s3.Client
	logger   *logger.Logger
}

func NewItemUseCase(itemRepo persistent.ItemRepository, clubRepo persistent.ClubRepository, s3Client *s3.Client, logger *logger.Logger) ItemUseCase {
	return &itemUseCase{
		itemRepo: itemRepo,
		clubRepo: clubRepo,
		s3Client: s3Client,
		logger:   logger,
	}
}

func (uc *itemUseCase) CreateItem(item *entity.Item) (*entity.Item, error) {
	if item.Price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}

	// Club listings require membership
	if item.ClubID != "" {
		isMember, err := uc.clubRepo.IsMember(item.ClubID, item.SellerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check club membership: %w", err)
		}
		if !isMember {
			return nil, fmt.Errorf("not a member of this club")
		}
	}

	created, err := uc.itemRepo.Create(item)
	if err != nil {
		uc.logger.Error("Failed to create item: %v", err)
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return created, nil
}

func (uc *itemUseCase) GetItem(id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (uc *itemUseCase) ListItems(filter persistent.ItemFilter, limit, offset int) ([]*entity.Item, error) {
	items, err := uc.itemRepo.List(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (uc *itemUseCase) UpdateItem(userID string, item *entity.Item) (*entity.Item, error) {
	existing, err := uc.itemRepo.GetByID(item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if existing.SellerID != userID {
		return nil, fmt.Errorf("not the seller of this item")
	}
	if existing.Status == entity.ItemStatusSold {
		return nil, fmt.Errorf("item already sold")
	}

	if item.Title == "" {
		item.Title = existing.Title
	}
	if item.Price == 0 {
		item.Price = existing.Price
	}
	if item.ImageURL == "" {
		item.ImageURL = existing.ImageURL
	}

	if err := uc.itemRepo.Update(item); err != nil {
		uc.logger.Error("Failed to update item: %v", err)
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return uc.itemRepo.GetByID(item.ID)
}

func (uc *itemUseCase) RemoveItem(userID, itemID string) error {
	existing, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}
	if existing.SellerID != userID {
		return fmt.Errorf("not the seller of this item")
	}

	if err := uc.itemRepo.UpdateStatus(itemID, entity.ItemStatusRemoved); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

func (uc *itemUseCase) UploadImage(userID, itemID string, file multipart.File, contentType string) (string, error) {
	existing, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return "", fmt.Errorf("failed to get item: %w", err)
	}
	if existing.SellerID != userID {
		return "", fmt.Errorf("not the seller of this item")
	}

	key := fmt.Sprintf("items/%s/%s", itemID, uuid.New().String())
	url, err := uc.s3Client.UploadFile(key, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload item image: %v", err)
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	existing.ImageURL = url
	if err := uc.itemRepo.Update(existing); err != nil {
		return "", fmt.Errorf("failed to save image url: %w", err)
	}

	return url, nil
}
