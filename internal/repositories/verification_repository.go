package repositories

import (
	"errors"
	"time"

	"klarfix/internal/models"

	"gorm.io/gorm"
)

var (
	ErrVerificationNotFound = errors.New("verification not found")
	ErrVerificationExists   = errors.New("active verification already exists")
	ErrVerificationReviewed = errors.New("verification already reviewed")
)

// VerificationListItem is a verification joined with the submitter's name and e-mail.
type VerificationListItem struct {
	models.Verification
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

type VerificationFilter struct {
	Pagination
	Status models.VerificationStatus
}

// ReviewDecision is the outcome an admin records on a pending verification.
type ReviewDecision struct {
	Status     models.VerificationStatus
	ReviewerID uint
	Feedback   *string
	ReviewedAt time.Time
}

type VerificationRepository interface {
	Create(db *gorm.DB, verification *models.Verification) error
	FindByID(db *gorm.DB, id uint) (*models.Verification, error)
	FindLatestByUser(db *gorm.DB, userID uint) (*models.Verification, error)
	HasActive(db *gorm.DB, userID uint) (bool, error)
	List(db *gorm.DB, filter VerificationFilter) ([]VerificationListItem, error)
	Review(db *gorm.DB, id uint, decision ReviewDecision) error
}

type VerificationRepositoryImpl struct{}

func NewVerificationRepository() VerificationRepository {
	return &VerificationRepositoryImpl{}
}

func (r *VerificationRepositoryImpl) Create(db *gorm.DB, verification *models.Verification) error {
	if err := db.Create(verification).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrVerificationExists
		}
		return err
	}
	return nil
}

func (r *VerificationRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Verification, error) {
	var verification models.Verification
	if err := db.First(&verification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &verification, nil
}

func (r *VerificationRepositoryImpl) FindLatestByUser(db *gorm.DB, userID uint) (*models.Verification, error) {
	var verification models.Verification
	err := newestFirst(db.Where("user_id = ?", userID), "verifications").First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &verification, nil
}

// HasActive reports whether the user holds a pending or approved verification.
func (r *VerificationRepositoryImpl) HasActive(db *gorm.DB, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Verification{}).
		Where("user_id = ? AND status IN ?", userID, []models.VerificationStatus{
			models.VerificationStatusPending,
			models.VerificationStatusApproved,
		}).
		Count(&count).Error
	return count > 0, err
}

func (r *VerificationRepositoryImpl) List(db *gorm.DB, filter VerificationFilter) ([]VerificationListItem, error) {
	query := db.Table("verifications").
		Select("verifications.*, users.name AS user_name, users.username AS user_email").
		Joins("LEFT JOIN users ON users.id = verifications.user_id")

	if filter.Status != "" {
		query = query.Where("verifications.status = ?", filter.Status)
	}

	items := make([]VerificationListItem, 0)
	err := filter.Pagination.apply(newestFirst(query, "verifications")).Scan(&items).Error
	return items, err
}

// Review moves a pending verification to the decided status. The WHERE on
// status makes concurrent reviews race-free: the loser gets ErrVerificationReviewed.
func (r *VerificationRepositoryImpl) Review(db *gorm.DB, id uint, decision ReviewDecision) error {
	result := db.Model(&models.Verification{}).
		Where("id = ? AND status = ?", id, models.VerificationStatusPending).
		Updates(map[string]interface{}{
			"status":      decision.Status,
			"reviewed_by": decision.ReviewerID,
			"reviewed_at": decision.ReviewedAt,
			"feedback":    decision.Feedback,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(db, id); err != nil {
			return err
		}
		return ErrVerificationReviewed
	}
	return nil
}
