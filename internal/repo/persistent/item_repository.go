package persistent

import (
	"campus-market/internal/entity"
	"campus-market/pkg/models"

	"gorm.io/gorm"
)

type ItemFilter struct {
	Campus   string
	Category string
	ClubID   string
	Status   string
}

type ItemRepository interface {
	Create(item *entity.Item) (*entity.Item, error)
	GetByID(id string) (*entity.Item, error)
	List(filter ItemFilter, limit, offset int) ([]*entity.Item, error)
	Update(item *entity.Item) error
	UpdateStatus(id string, status entity.ItemStatus) error
	Delete(id string) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item *entity.Item) (*entity.Item, error) {
	itemModel := &models.Item{
		ID:          item.ID,
		SellerID:    item.SellerID,
		ClubID:      item.ClubID,
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		Campus:      item.Campus,
		ImageURL:    item.ImageURL,
		Status:      models.ItemStatusActive,
	}
	if err := r.db.Create(itemModel).Error; err != nil {
		return nil, err
	}
	return ToItemEntity(itemModel), nil
}

func (r *itemRepository) GetByID(id string) (*entity.Item, error) {
	var itemModel models.Item
	if err := r.db.Where("id = ?", id).First(&itemModel).Error; err != nil {
		return nil, err
	}
	return ToItemEntity(&itemModel), nil
}

func (r *itemRepository) List(filter ItemFilter, limit, offset int) ([]*entity.Item, error) {
	query := r.db.Model(&models.Item{}).Order("created_at DESC")
	if filter.Campus != "" {
		query = query.Where("campus = ?", filter.Campus)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ClubID != "" {
		query = query.Where("club_id = ?", filter.ClubID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var itemModels []models.Item
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]*entity.Item, len(itemModels))
	for i := range itemModels {
		items[i] = ToItemEntity(&itemModels[i])
	}
	return items, nil
}

func (r *itemRepository) Update(item *entity.Item) error {
	return r.db.Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"title":       item.Title,
		"description": item.Description,
		"price":       item.Price,
		"category":    item.Category,
		"image_url":   item.ImageURL,
	}).Error
}

func (r *itemRepository) UpdateStatus(id string, status entity.ItemStatus) error {
	return r.db.Model(&models.Item{}).Where("id = ?", id).Update("status", string(status)).Error
}

func (r *itemRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Item{}).Error
}
