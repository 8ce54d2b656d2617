package services

import (
	"context"
	"strings"

	"klarfix/internal/logger"
	"klarfix/internal/models"
	"klarfix/internal/repositories"
	"klarfix/internal/services/dto"
	"klarfix/pkg/apperrors"

	"gorm.io/gorm"
)

// CatalogService manages the services helpers offer.
type CatalogService interface {
	CreateService(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.CreateServiceRequest) (*models.Service, error)
	GetService(ctx context.Context, db *gorm.DB, id uint) (*models.Service, error)
	SearchServices(ctx context.Context, db *gorm.DB, query *dto.ServiceSearchQuery, page repositories.Pagination) ([]models.Service, error)
	ListHelperServices(ctx context.Context, db *gorm.DB, helperID uint) ([]models.Service, error)
	UpdateService(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, req *dto.UpdateServiceRequest) (*models.Service, error)
	DeleteService(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint) error
}

type CatalogServiceImpl struct {
	serviceRepo repositories.ServiceRepository
	userRepo    repositories.UserRepository
}

func NewCatalogService(serviceRepo repositories.ServiceRepository, userRepo repositories.UserRepository) CatalogService {
	return &CatalogServiceImpl{
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
	}
}

func (s *CatalogServiceImpl) CreateService(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.CreateServiceRequest) (*models.Service, error) {
	var helperID uint
	switch {
	case actor.IsAdmin():
		if req.HelperID == nil {
			return nil, apperrors.ValidationError(map[string]string{"helperId": "This field is required"})
		}
		helperID = *req.HelperID
	case actor.IsHelper():
		helperID = actor.UserID
	default:
		return nil, apperrors.NewForbiddenError("Only helpers can offer services")
	}

	if *req.Price > dto.MaxAmountCents {
		return nil, apperrors.ValidationError(map[string]string{"price": amountTooLarge})
	}

	if _, err := s.userRepo.FindHelperByID(db, helperID); err != nil {
		return nil, translate(err, repositories.ErrUserNotFound, apperrors.ErrHelperNotFound)
	}

	service := &models.Service{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Price:       *req.Price,
		HelperID:    helperID,
	}
	if err := s.serviceRepo.Create(db, service); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "service created", "service_id", service.ID, "helper_id", helperID)
	return service, nil
}

func (s *CatalogServiceImpl) GetService(ctx context.Context, db *gorm.DB, id uint) (*models.Service, error) {
	service, err := s.serviceRepo.FindByID(db, id)
	if err != nil {
		return nil, translate(err, repositories.ErrServiceNotFound, apperrors.ErrServiceNotFound)
	}
	return service, nil
}

func (s *CatalogServiceImpl) SearchServices(ctx context.Context, db *gorm.DB, query *dto.ServiceSearchQuery, page repositories.Pagination) ([]models.Service, error) {
	filter := repositories.ServiceFilter{Pagination: page}
	if query != nil {
		filter.Category = query.Category
	}
	services, err := s.serviceRepo.Search(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return services, nil
}

func (s *CatalogServiceImpl) ListHelperServices(ctx context.Context, db *gorm.DB, helperID uint) ([]models.Service, error) {
	services, err := s.serviceRepo.Search(db, repositories.ServiceFilter{HelperID: &helperID})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return services, nil
}

func (s *CatalogServiceImpl) UpdateService(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, req *dto.UpdateServiceRequest) (*models.Service, error) {
	service, err := s.ownedService(db, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		service.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price > dto.MaxAmountCents {
			return nil, apperrors.ValidationError(map[string]string{"price": amountTooLarge})
		}
		service.Price = *req.Price
	}

	if err := s.serviceRepo.Update(db, service); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return service, nil
}

func (s *CatalogServiceImpl) DeleteService(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint) error {
	if _, err := s.ownedService(db, actor, id); err != nil {
		return err
	}
	if err := s.serviceRepo.Delete(db, id); err != nil {
		return translate(err, repositories.ErrServiceNotFound, apperrors.ErrServiceNotFound)
	}
	logger.CtxInfo(ctx, "service deleted", "service_id", id, "actor_id", actor.UserID)
	return nil
}

// ownedService loads a service the actor may modify: its helper or an admin.
func (s *CatalogServiceImpl) ownedService(db *gorm.DB, actor dto.Actor, id uint) (*models.Service, error) {
	service, err := s.serviceRepo.FindByID(db, id)
	if err != nil {
		return nil, translate(err, repositories.ErrServiceNotFound, apperrors.ErrServiceNotFound)
	}
	if !actor.IsAdmin() && !actor.Is(service.HelperID) {
		return nil, apperrors.NewForbiddenError("You can only modify your own services")
	}
	return service, nil
}
