package repositories

import (
	"errors"

	"klarfix/internal/models"

	"gorm.io/gorm"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationFilter struct {
	Pagination
	Status       models.ApplicationStatus
	AssignedToID *uint
}

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.Application) error
	FindByID(db *gorm.DB, id uint) (*models.Application, error)
	List(db *gorm.DB, filter ApplicationFilter) ([]models.Application, error)
	Update(db *gorm.DB, application *models.Application) error
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.Application) error {
	return db.Create(application).Error
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Application, error) {
	var application models.Application
	if err := db.First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) List(db *gorm.DB, filter ApplicationFilter) ([]models.Application, error) {
	query := db.Model(&models.Application{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AssignedToID != nil {
		query = query.Where("assigned_to_id = ?", *filter.AssignedToID)
	}
	applications := make([]models.Application, 0)
	err := filter.Pagination.apply(newestFirst(query, "applications")).Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) Update(db *gorm.DB, application *models.Application) error {
	return db.Model(application).Select("status", "assigned_to_id", "updated_at").Updates(application).Error
}
