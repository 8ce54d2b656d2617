package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"klarfix/internal/logger"
	"klarfix/internal/models"
	"klarfix/internal/repositories"
	"klarfix/internal/services/dto"
	"klarfix/pkg/apperrors"

	"gorm.io/gorm"
)

type VerificationService interface {
	SubmitVerification(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.SubmitVerificationRequest) (*models.Verification, error)
	ReviewVerification(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, req *dto.ReviewVerificationRequest) (*models.Verification, error)
	GetUserVerificationStatus(ctx context.Context, db *gorm.DB, userID uint) (*dto.VerificationStatusResponse, error)
	ListVerifications(ctx context.Context, db *gorm.DB, actor dto.Actor, query *dto.VerificationQuery, page repositories.Pagination) ([]repositories.VerificationListItem, error)
}

type VerificationServiceImpl struct {
	verificationRepo repositories.VerificationRepository
	userRepo         repositories.UserRepository
	notifications    NotificationService
}

func NewVerificationService(
	verificationRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) VerificationService {
	return &VerificationServiceImpl{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		notifications:    notifications,
	}
}

func (s *VerificationServiceImpl) SubmitVerification(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.SubmitVerificationRequest) (*models.Verification, error) {
	if !actor.IsHelper() {
		return nil, apperrors.NewForbiddenError("Only helpers can submit a verification")
	}
	if details := quizErrors(req); len(details) > 0 {
		return nil, apperrors.ValidationError(details)
	}

	verification := &models.Verification{
		UserID:              actor.UserID,
		RouterSetup:         req.RouterSetup,
		FirewallSetting:     req.FirewallSetting,
		WindowsIssue:        req.WindowsIssue,
		CableTypes:          req.CableTypes,
		WPSExplanation:      strings.TrimSpace(req.WPSExplanation),
		TechnicalExperience: strings.TrimSpace(req.TechnicalExperience),
		ToolsUsed:           strings.TrimSpace(req.ToolsUsed),
		Status:              models.VerificationStatusPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		active, err := s.verificationRepo.HasActive(tx, actor.UserID)
		if err != nil {
			return err
		}
		if active {
			return apperrors.ErrVerificationExists
		}
		return s.verificationRepo.Create(tx, verification)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrVerificationExists) {
			return nil, apperrors.ErrVerificationExists
		}
		return nil, passThrough(err)
	}

	logger.CtxInfo(ctx, "verification submitted", "verification_id", verification.ID, "user_id", actor.UserID)
	return verification, nil
}

// quizErrors re-checks answers after trimming so padded texts cannot pass the length rules.
func quizErrors(req *dto.SubmitVerificationRequest) map[string]string {
	details := make(map[string]string)
	answers := map[string]models.QuizAnswer{
		"routerSetup":     req.RouterSetup,
		"firewallSetting": req.FirewallSetting,
		"windowsIssue":    req.WindowsIssue,
		"cableTypes":      req.CableTypes,
	}
	for field, answer := range answers {
		if !answer.IsValid() {
			details[field] = "Please select an answer (a, b, c or d)"
		}
	}

	texts := []struct {
		field string
		value string
		min   int
	}{
		{"wpsExplanation", req.WPSExplanation, 20},
		{"technicalExperience", req.TechnicalExperience, 50},
		{"toolsUsed", req.ToolsUsed, 10},
	}
	for _, t := range texts {
		if len([]rune(strings.TrimSpace(t.value))) < t.min {
			details[t.field] = minLengthMessage(t.min)
		}
	}
	return details
}

func minLengthMessage(n int) string {
	return fmt.Sprintf("Must be at least %d characters long", n)
}

func (s *VerificationServiceImpl) ReviewVerification(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, req *dto.ReviewVerificationRequest) (*models.Verification, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only admins can review verifications")
	}
	if !req.Status.IsDecision() {
		return nil, apperrors.ValidationError(map[string]string{"status": "Decision must be approved or rejected"})
	}

	var feedback *string
	if req.Feedback != nil {
		if trimmed := strings.TrimSpace(*req.Feedback); trimmed != "" {
			feedback = &trimmed
		}
	}

	var reviewed *models.Verification
	err := db.Transaction(func(tx *gorm.DB) error {
		verification, err := s.verificationRepo.FindByID(tx, id)
		if err != nil {
			return translate(err, repositories.ErrVerificationNotFound, apperrors.ErrVerificationNotFound)
		}
		if verification.IsReviewed() {
			return apperrors.ErrVerificationReviewed
		}

		err = s.verificationRepo.Review(tx, id, repositories.ReviewDecision{
			Status:     req.Status,
			ReviewerID: actor.UserID,
			Feedback:   feedback,
			ReviewedAt: time.Now().UTC(),
		})
		if err != nil {
			if errors.Is(err, repositories.ErrVerificationReviewed) {
				return apperrors.ErrVerificationReviewed
			}
			return translate(err, repositories.ErrVerificationNotFound, apperrors.ErrVerificationNotFound)
		}

		if req.Status == models.VerificationStatusApproved {
			if err := s.userRepo.MarkVerified(tx, verification.UserID); err != nil {
				return translate(err, repositories.ErrUserNotFound, apperrors.ErrUserNotFound)
			}
		}

		reviewed, err = s.verificationRepo.FindByID(tx, id)
		return err
	})
	if err != nil {
		return nil, passThrough(err)
	}

	logger.CtxInfo(ctx, "verification reviewed",
		"verification_id", reviewed.ID,
		"user_id", reviewed.UserID,
		"status", reviewed.Status,
		"reviewer_id", actor.UserID,
	)

	if user, err := s.userRepo.FindByID(db, reviewed.UserID); err == nil {
		s.notifications.NotifyVerificationDecision(ctx, user, reviewed)
	} else {
		logger.CtxWithError(ctx, "failed to load user for verification notification", err, "user_id", reviewed.UserID)
	}

	return reviewed, nil
}

func (s *VerificationServiceImpl) GetUserVerificationStatus(ctx context.Context, db *gorm.DB, userID uint) (*dto.VerificationStatusResponse, error) {
	verification, err := s.verificationRepo.FindLatestByUser(db, userID)
	if err != nil {
		return nil, translate(err, repositories.ErrVerificationNotFound, apperrors.ErrVerificationNotFound)
	}
	return &dto.VerificationStatusResponse{
		ID:         verification.ID,
		Status:     verification.Status,
		Feedback:   verification.Feedback,
		ReviewedAt: verification.ReviewedAt,
		CreatedAt:  verification.CreatedAt,
	}, nil
}

func (s *VerificationServiceImpl) ListVerifications(ctx context.Context, db *gorm.DB, actor dto.Actor, query *dto.VerificationQuery, page repositories.Pagination) ([]repositories.VerificationListItem, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only admins can list verifications")
	}
	filter := repositories.VerificationFilter{Pagination: page}
	if query != nil {
		filter.Status = query.Status
	}
	items, err := s.verificationRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return items, nil
}
