package services

import (
	"context"
	"fmt"
	"strings"

	"klarfix/internal/logger"
	"klarfix/internal/models"
	"klarfix/internal/repositories"
	"klarfix/internal/services/dto"
	"klarfix/internal/validator"
	"klarfix/pkg/apperrors"

	"gorm.io/gorm"
)

// ApplicationService handles support applications submitted without an account.
type ApplicationService interface {
	SubmitApplication(ctx context.Context, db *gorm.DB, req *dto.SubmitApplicationRequest) (*models.Application, error)
	GetApplication(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint) (*models.Application, error)
	ListApplications(ctx context.Context, db *gorm.DB, actor dto.Actor, query *dto.ApplicationQuery, page repositories.Pagination) ([]models.Application, error)
	UpdateApplication(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, req *dto.UpdateApplicationRequest) (*models.Application, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	userRepo        repositories.UserRepository
	notifications   NotificationService
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		notifications:   notifications,
	}
}

func (s *ApplicationServiceImpl) SubmitApplication(ctx context.Context, db *gorm.DB, req *dto.SubmitApplicationRequest) (*models.Application, error) {
	application := &models.Application{
		Name:                   strings.TrimSpace(req.Name),
		Email:                  strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:                  validator.NormalizePhone(req.Phone),
		ProblemType:            req.ProblemType,
		ProblemDescription:     strings.TrimSpace(req.ProblemDescription),
		Urgency:                req.Urgency,
		PreferredContactMethod: req.PreferredContactMethod,
		PreviousAttempts:       req.PreviousAttempts,
		DeviceInfo:             strings.TrimSpace(req.DeviceInfo),
		Status:                 models.ApplicationStatusPending,
	}
	if err := s.applicationRepo.Create(db, application); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "application submitted", "application_id", application.ID, "urgency", application.Urgency)
	s.notifications.NotifyApplicationReceived(ctx, application)
	return application, nil
}

func (s *ApplicationServiceImpl) GetApplication(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(db, id)
	if err != nil {
		return nil, translate(err, repositories.ErrApplicationNotFound, apperrors.ErrApplicationNotFound)
	}
	if !canHandleApplication(actor, application) {
		return nil, apperrors.NewForbiddenError("You are not assigned to this application")
	}
	return application, nil
}

// ListApplications returns all applications to admins and assigned ones to helpers.
func (s *ApplicationServiceImpl) ListApplications(ctx context.Context, db *gorm.DB, actor dto.Actor, query *dto.ApplicationQuery, page repositories.Pagination) ([]models.Application, error) {
	filter := repositories.ApplicationFilter{Pagination: page}
	if query != nil {
		filter.Status = query.Status
	}
	switch {
	case actor.IsAdmin():
	case actor.IsHelper():
		helperID := actor.UserID
		filter.AssignedToID = &helperID
	default:
		return nil, apperrors.NewForbiddenError("Only helpers and admins can view applications")
	}

	applications, err := s.applicationRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applications, nil
}

// UpdateApplication changes status (admin or assigned helper) and assignment (admin only).
// Assigning a helper to a pending application moves it to assigned.
func (s *ApplicationServiceImpl) UpdateApplication(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	if req.Status == nil && req.AssignedToID == nil {
		return nil, apperrors.NewBadRequestError("Nothing to update: provide status or assignedToId")
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, apperrors.ErrInvalidStatus("application", fmt.Sprintf("Unknown status %q", *req.Status))
	}

	var updated *models.Application
	err := db.Transaction(func(tx *gorm.DB) error {
		application, err := s.applicationRepo.FindByID(tx, id)
		if err != nil {
			return translate(err, repositories.ErrApplicationNotFound, apperrors.ErrApplicationNotFound)
		}
		if !canHandleApplication(actor, application) {
			return apperrors.NewForbiddenError("You are not assigned to this application")
		}

		if req.AssignedToID != nil {
			if !actor.IsAdmin() {
				return apperrors.NewForbiddenError("Only admins can assign applications")
			}
			if _, err := s.userRepo.FindHelperByID(tx, *req.AssignedToID); err != nil {
				return translate(err, repositories.ErrUserNotFound, apperrors.ErrHelperNotFound)
			}
			helperID := *req.AssignedToID
			application.AssignedToID = &helperID
			if application.Status == models.ApplicationStatusPending {
				application.Status = models.ApplicationStatusAssigned
			}
		}
		if req.Status != nil {
			application.Status = *req.Status
		}

		if err := s.applicationRepo.Update(tx, application); err != nil {
			return err
		}
		updated = application
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}

	logger.CtxInfo(ctx, "application updated", "application_id", id, "status", updated.Status, "actor_id", actor.UserID)
	return updated, nil
}

func canHandleApplication(actor dto.Actor, application *models.Application) bool {
	if actor.IsAdmin() {
		return true
	}
	return application.AssignedToID != nil && actor.Is(*application.AssignedToID)
}
