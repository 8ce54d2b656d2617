package services

import (
	"context"
	"net/http"
	"strings"

	"klarfix/internal/logger"
	"klarfix/internal/models"
	"klarfix/internal/repositories"
	"klarfix/internal/services/dto"
	"klarfix/internal/validator"
	"klarfix/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetUser(ctx context.Context, db *gorm.DB, viewer *dto.Actor, id uint) (*models.User, error)
	GetHelper(ctx context.Context, db *gorm.DB, id uint) (*models.User, error)
	ListOnlineHelpers(ctx context.Context, db *gorm.DB) ([]models.User, error)
	SetOnline(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, online bool) (*models.User, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.UpdateProfileRequest) (*models.User, error)

	// Admin operations
	ListUsers(ctx context.Context, db *gorm.DB, query *dto.UserListQuery, page repositories.Pagination) (*dto.ListResponse[models.User], error)
	AdminUpdateUser(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, req *dto.AdminUpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetUser hides the phone number from everyone but the owner and admins
// unless the user opted in.
func (s *UserServiceImpl) GetUser(ctx context.Context, db *gorm.DB, viewer *dto.Actor, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		return nil, translate(err, repositories.ErrUserNotFound, apperrors.ErrUserNotFound)
	}
	if viewer != nil && (viewer.Is(user.ID) || viewer.IsAdmin()) {
		return user, nil
	}
	public := user.PublicView()
	return &public, nil
}

func (s *UserServiceImpl) GetHelper(ctx context.Context, db *gorm.DB, id uint) (*models.User, error) {
	helper, err := s.userRepo.FindHelperByID(db, id)
	if err != nil {
		return nil, translate(err, repositories.ErrUserNotFound, apperrors.ErrHelperNotFound)
	}
	public := helper.PublicView()
	return &public, nil
}

func (s *UserServiceImpl) ListOnlineHelpers(ctx context.Context, db *gorm.DB) ([]models.User, error) {
	helpers, err := s.userRepo.ListOnlineHelpers(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for i := range helpers {
		helpers[i] = helpers[i].PublicView()
	}
	return helpers, nil
}

func (s *UserServiceImpl) SetOnline(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, online bool) (*models.User, error) {
	if !actor.Is(id) && !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("You can only change your own online status")
	}

	if err := s.userRepo.SetOnline(db, id, online); err != nil {
		return nil, translate(err, repositories.ErrUserNotFound, apperrors.ErrUserNotFound)
	}

	logger.CtxInfo(ctx, "online status changed", "target_user_id", id, "online", online)
	return s.reload(db, id)
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.UpdateProfileRequest) (*models.User, error) {
	fields := profileFields(req)
	if err := s.userRepo.UpdateFields(db, actor.UserID, fields); err != nil {
		return nil, translate(err, repositories.ErrUserNotFound, apperrors.ErrUserNotFound)
	}
	return s.reload(db, actor.UserID)
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, db *gorm.DB, query *dto.UserListQuery, page repositories.Pagination) (*dto.ListResponse[models.User], error) {
	filter := repositories.UserFilter{Pagination: page}
	if query != nil {
		filter.Role = query.Role
		filter.Verified = query.Verified
		filter.Search = strings.TrimSpace(query.Search)
	}

	users, total, err := s.userRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if users == nil {
		users = []models.User{}
	}
	return &dto.ListResponse[models.User]{Items: users, Total: total}, nil
}

func (s *UserServiceImpl) AdminUpdateUser(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, req *dto.AdminUpdateUserRequest) (*models.User, error) {
	fields := profileFields(&req.UpdateProfileRequest)
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, apperrors.ValidationError(map[string]string{"role": "Invalid role"})
		}
		fields["role"] = *req.Role
	}
	if req.Verified != nil {
		fields["verified"] = *req.Verified
	}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.IsOnline != nil {
		fields["is_online"] = *req.IsOnline
	}

	if _, err := s.userRepo.FindByID(db, id); err != nil {
		return nil, translate(err, repositories.ErrUserNotFound, apperrors.ErrUserNotFound)
	}
	if err := s.userRepo.UpdateFields(db, id, fields); err != nil {
		return nil, translate(err, repositories.ErrUserNotFound, apperrors.ErrUserNotFound)
	}

	logger.CtxInfo(ctx, "admin updated user", "admin_id", actor.UserID, "target_user_id", id)
	return s.reload(db, id)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint) error {
	if actor.Is(id) {
		return apperrors.New(apperrors.CodeInvalidOperation, "user", "You cannot delete your own account here", http.StatusBadRequest)
	}
	if err := s.userRepo.Delete(db, id); err != nil {
		return translate(err, repositories.ErrUserNotFound, apperrors.ErrUserNotFound)
	}
	logger.CtxInfo(ctx, "admin deleted user", "admin_id", actor.UserID, "target_user_id", id)
	return nil
}

func (s *UserServiceImpl) reload(db *gorm.DB, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		return nil, translate(err, repositories.ErrUserNotFound, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func profileFields(req *dto.UpdateProfileRequest) map[string]interface{} {
	fields := make(map[string]interface{})
	if req == nil {
		return fields
	}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Skills != nil {
		fields["skills"] = models.Skills(*req.Skills)
	}
	if req.PhoneNumber != nil {
		fields["phone_number"] = validator.NormalizePhone(*req.PhoneNumber)
	}
	if req.ShowPhone != nil {
		fields["show_phone"] = *req.ShowPhone
	}
	return fields
}
