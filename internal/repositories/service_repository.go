package repositories

import (
	"errors"

	"klarfix/internal/models"

	"gorm.io/gorm"
)

var ErrServiceNotFound = errors.New("service not found")

type ServiceFilter struct {
	Pagination
	Category models.ServiceCategory
	HelperID *uint
}

type ServiceRepository interface {
	Create(db *gorm.DB, service *models.Service) error
	FindByID(db *gorm.DB, id uint) (*models.Service, error)
	Search(db *gorm.DB, filter ServiceFilter) ([]models.Service, error)
	Update(db *gorm.DB, service *models.Service) error
	Delete(db *gorm.DB, id uint) error
}

type ServiceRepositoryImpl struct{}

func NewServiceRepository() ServiceRepository {
	return &ServiceRepositoryImpl{}
}

func (r *ServiceRepositoryImpl) Create(db *gorm.DB, service *models.Service) error {
	return db.Create(service).Error
}

func (r *ServiceRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Service, error) {
	var service models.Service
	if err := db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepositoryImpl) Search(db *gorm.DB, filter ServiceFilter) ([]models.Service, error) {
	query := db.Model(&models.Service{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.HelperID != nil {
		query = query.Where("helper_id = ?", *filter.HelperID)
	}

	services := make([]models.Service, 0)
	err := filter.Pagination.apply(newestFirst(query, "services")).Find(&services).Error
	return services, err
}

func (r *ServiceRepositoryImpl) Update(db *gorm.DB, service *models.Service) error {
	return db.Save(service).Error
}

func (r *ServiceRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Service{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}
