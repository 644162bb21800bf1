package persistent

import (
	"campus-market/internal/entity"
	"campus-market/pkg/models"

	"gorm.io/gorm"
)

type ClubRepository interface {
	Create(club *entity.Club) (*entity.Club, error)
	GetByID(id string) (*entity.Club, error)
	List(campus string, limit, offset int) ([]*entity.Club, error)
	Update(club *entity.Club) error
	Delete(id string) error
	AddMember(clubID, userID string) error
	RemoveMember(clubID, userID string) error
	IsMember(clubID, userID string) (bool, error)
	GetMembers(clubID string) ([]*entity.ClubMember, error)
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) Create(club *entity.Club) (*entity.Club, error) {
	clubModel := &models.Club{
		ID:          club.ID,
		OwnerID:     club.OwnerID,
		Name:        club.Name,
		Description: club.Description,
		Campus:      club.Campus,
	}
	if err := r.db.Create(clubModel).Error; err != nil {
		return nil, err
	}

	// Owner joins automatically
	member := &models.ClubMember{
		ClubID: clubModel.ID,
		UserID: club.OwnerID,
		Role:   "owner",
	}
	if err := r.db.Create(member).Error; err != nil {
		return nil, err
	}

	return ToClubEntity(clubModel), nil
}

func (r *clubRepository) GetByID(id string) (*entity.Club, error) {
	var clubModel models.Club
	if err := r.db.Where("id = ?", id).First(&clubModel).Error; err != nil {
		return nil, err
	}

	club := ToClubEntity(&clubModel)
	r.db.Model(&models.ClubMember{}).Where("club_id = ?", id).Count(&club.MemberCount)
	return club, nil
}

func (r *clubRepository) List(campus string, limit, offset int) ([]*entity.Club, error) {
	query := r.db.Model(&models.Club{}).Order("created_at DESC")
	if campus != "" {
		query = query.Where("campus = ?", campus)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var clubModels []models.Club
	if err := query.Find(&clubModels).Error; err != nil {
		return nil, err
	}

	clubs := make([]*entity.Club, len(clubModels))
	for i := range clubModels {
		clubs[i] = ToClubEntity(&clubModels[i])
	}
	return clubs, nil
}

func (r *clubRepository) Update(club *entity.Club) error {
	return r.db.Model(&models.Club{}).Where("id = ?", club.ID).Updates(map[string]interface{}{
		"name":        club.Name,
		"description": club.Description,
	}).Error
}

func (r *clubRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Club{}).Error
}

func (r *clubRepository) AddMember(clubID, userID string) error {
	member := &models.ClubMember{
		ClubID: clubID,
		UserID: userID,
		Role:   "member",
	}
	return r.db.Create(member).Error
}

func (r *clubRepository) RemoveMember(clubID, userID string) error {
	return r.db.Where("club_id = ? AND user_id = ?", clubID, userID).Delete(&models.ClubMember{}).Error
}

func (r *clubRepository) IsMember(clubID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ClubMember{}).Where("club_id = ? AND user_id = ?", clubID, userID).Count(&count).Error
	return count > 0, err
}

func (r *clubRepository) GetMembers(clubID string) ([]*entity.ClubMember, error) {
	var memberModels []models.ClubMember
	if err := r.db.Where("club_id = ?", clubID).Order("joined_at ASC").Find(&memberModels).Error; err != nil {
		return nil, err
	}

	members := make([]*entity.ClubMember, len(memberModels))
	for i := range memberModels {
		members[i] = ToClubMemberEntity(&memberModels[i])
	}
	return members, nil
}
