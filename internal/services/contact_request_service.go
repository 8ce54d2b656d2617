package services

import (
	"context"
	"fmt"
	"time"

	"klarfix/internal/logger"
	"klarfix/internal/models"
	"klarfix/internal/repositories"
	"klarfix/internal/services/dto"
	"klarfix/internal/validator"
	"klarfix/pkg/apperrors"

	"gorm.io/gorm"
)

type ContactRequestService interface {
	CreateContactRequest(ctx context.Context, db *gorm.DB, helperID uint, req *dto.CreateContactRequest) (*models.ContactRequest, error)
	UpdateContactRequestStatus(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, req *dto.UpdateContactStatusRequest) (*models.ContactRequest, error)
	ListContactRequests(ctx context.Context, db *gorm.DB, actor dto.Actor, query *dto.ContactRequestQuery, page repositories.Pagination) ([]repositories.ContactRequestListItem, error)
}

type ContactRequestServiceImpl struct {
	contactRepo   repositories.ContactRequestRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewContactRequestService(
	contactRepo repositories.ContactRequestRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) ContactRequestService {
	return &ContactRequestServiceImpl{
		contactRepo:   contactRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *ContactRequestServiceImpl) CreateContactRequest(ctx context.Context, db *gorm.DB, helperID uint, req *dto.CreateContactRequest) (*models.ContactRequest, error) {
	phone := validator.NormalizePhone(req.Phone())
	if !validator.ValidPhone(phone) {
		return nil, apperrors.ErrInvalidPhone.WithDetails(map[string]string{
			"clientPhone": "Please enter a valid phone number",
		})
	}

	helper, err := s.userRepo.FindHelperByID(db, helperID)
	if err != nil {
		return nil, translate(err, repositories.ErrUserNotFound, apperrors.ErrHelperNotFound)
	}

	request := &models.ContactRequest{
		HelperID:    helper.ID,
		ClientPhone: phone,
		Status:      models.ContactStatusPending,
	}
	if err := s.contactRepo.Create(db, request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "contact request created", "contact_request_id", request.ID, "helper_id", helper.ID)

	s.notifications.NotifyContactRequest(ctx, helper, request)
	return request, nil
}

// UpdateContactRequestStatus checks, in order: the status value, the record,
// the caller's right to touch it, and the transition.
func (s *ContactRequestServiceImpl) UpdateContactRequestStatus(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, req *dto.UpdateContactStatusRequest) (*models.ContactRequest, error) {
	if !req.Status.IsValid() {
		return nil, apperrors.ErrInvalidStatus("contact", fmt.Sprintf("Unknown status %q", req.Status)).
			WithDetails(map[string]string{"status": "Must be one of: pending, contacted, completed, cancelled, failed"})
	}

	var updated *models.ContactRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		request, err := s.contactRepo.FindByID(tx, id)
		if err != nil {
			return translate(err, repositories.ErrContactRequestNotFound, apperrors.ErrContactRequestNotFound)
		}

		if !actor.IsAdmin() && !actor.Is(request.HelperID) {
			return apperrors.NewForbiddenError("Only the assigned helper or an admin can update this request")
		}

		if !request.Status.CanTransitionTo(req.Status) {
			return apperrors.ErrIllegalTransition("contact",
				fmt.Sprintf("Cannot change status from %s to %s", request.Status, req.Status))
		}

		previous := request.Status
		request.Status = req.Status
		if req.Notes != nil {
			request.Notes = req.Notes
		}
		request.UpdatedAt = time.Now()

		if err := s.contactRepo.UpdateStatus(tx, request); err != nil {
			return err
		}

		logger.CtxInfo(ctx, "contact request status changed",
			"contact_request_id", request.ID,
			"from", previous,
			"to", request.Status,
			"actor_id", actor.UserID,
		)
		updated = request
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	return updated, nil
}

// ListContactRequests shows helpers their own requests; admins see all and may filter by helper.
func (s *ContactRequestServiceImpl) ListContactRequests(ctx context.Context, db *gorm.DB, actor dto.Actor, query *dto.ContactRequestQuery, page repositories.Pagination) ([]repositories.ContactRequestListItem, error) {
	filter := repositories.ContactRequestFilter{Pagination: page}
	if query != nil {
		filter.Status = query.Status
		filter.HelperID = query.HelperID
	}

	switch {
	case actor.IsAdmin():
	case actor.IsHelper():
		helperID := actor.UserID
		filter.HelperID = &helperID
	default:
		return nil, apperrors.NewForbiddenError("Only helpers and admins can view contact requests")
	}

	items, err := s.contactRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return items, nil
}
