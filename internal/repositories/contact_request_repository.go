package repositories

import (
	"errors"

	"klarfix/internal/models"

	"gorm.io/gorm"
)

var ErrContactRequestNotFound = errors.New("contact request not found")

// ContactRequestListItem is a request joined with its helper's display fields.
type ContactRequestListItem struct {
	models.ContactRequest
	HelperName     string `json:"helperName"`
	HelperUsername string `json:"helperUsername"`
}

type ContactRequestFilter struct {
	Pagination
	HelperID *uint
	Status   models.ContactStatus
}

type ContactRequestRepository interface {
	Create(db *gorm.DB, request *models.ContactRequest) error
	FindByID(db *gorm.DB, id uint) (*models.ContactRequest, error)
	List(db *gorm.DB, filter ContactRequestFilter) ([]ContactRequestListItem, error)
	UpdateStatus(db *gorm.DB, request *models.ContactRequest) error
}

type ContactRequestRepositoryImpl struct{}

func NewContactRequestRepository() ContactRequestRepository {
	return &ContactRequestRepositoryImpl{}
}

func (r *ContactRequestRepositoryImpl) Create(db *gorm.DB, request *models.ContactRequest) error {
	return db.Create(request).Error
}

func (r *ContactRequestRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.ContactRequest, error) {
	var request models.ContactRequest
	if err := db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *ContactRequestRepositoryImpl) List(db *gorm.DB, filter ContactRequestFilter) ([]ContactRequestListItem, error) {
	query := db.Table("contact_requests").
		Select("contact_requests.*, users.name AS helper_name, users.username AS helper_username").
		Joins("LEFT JOIN users ON users.id = contact_requests.helper_id")

	if filter.HelperID != nil {
		query = query.Where("contact_requests.helper_id = ?", *filter.HelperID)
	}
	if filter.Status != "" {
		query = query.Where("contact_requests.status = ?", filter.Status)
	}

	items := make([]ContactRequestListItem, 0)
	err := filter.Pagination.apply(newestFirst(query, "contact_requests")).Scan(&items).Error
	return items, err
}

// UpdateStatus writes status, notes and updated_at of an existing request.
func (r *ContactRequestRepositoryImpl) UpdateStatus(db *gorm.DB, request *models.ContactRequest) error {
	result := db.Model(request).Select("status", "notes", "updated_at").Updates(request)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
