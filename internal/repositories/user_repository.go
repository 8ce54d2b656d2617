package repositories

import (
	"errors"

	"klarfix/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserFilter struct {
	Pagination
	Role     models.UserRole
	Verified *bool
	Search   string
}

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id uint) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	FindHelperByID(db *gorm.DB, id uint) (*models.User, error)
	ExistsByUsername(db *gorm.DB, username string) (bool, error)
	List(db *gorm.DB, filter UserFilter) ([]models.User, int64, error)
	ListOnlineHelpers(db *gorm.DB) ([]models.User, error)
	Update(db *gorm.DB, user *models.User) error
	UpdateFields(db *gorm.DB, id uint, fields map[string]interface{}) error
	SetOnline(db *gorm.DB, id uint, online bool) error
	MarkVerified(db *gorm.DB, id uint) error
	UpdateRating(db *gorm.DB, id uint, rating int) error
	Delete(db *gorm.DB, id uint) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindHelperByID returns ErrUserNotFound unless the user exists with role helper.
func (r *UserRepositoryImpl) FindHelperByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.Where("id = ? AND role = ?", id, models.UserRoleHelper).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) ExistsByUsername(db *gorm.DB, username string) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepositoryImpl) List(db *gorm.DB, filter UserFilter) ([]models.User, int64, error) {
	query := db.Model(&models.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Verified != nil {
		query = query.Where("verified = ?", *filter.Verified)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR username LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := filter.Pagination.apply(newestFirst(query, "users")).Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) ListOnlineHelpers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Where("role = ? AND is_online = ?", models.UserRoleHelper, true).
		Order("rating DESC").Order("id ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

func (r *UserRepositoryImpl) UpdateFields(db *gorm.DB, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	// A map is used so false/zero values are written.
	result := db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		// MySQL reports 0 rows for an unchanged value, so check existence separately.
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrUserNotFound
		}
	}
	return nil
}

func (r *UserRepositoryImpl) SetOnline(db *gorm.DB, id uint, online bool) error {
	return r.UpdateFields(db, id, map[string]interface{}{"is_online": online})
}

func (r *UserRepositoryImpl) MarkVerified(db *gorm.DB, id uint) error {
	return r.UpdateFields(db, id, map[string]interface{}{"verified": true})
}

func (r *UserRepositoryImpl) UpdateRating(db *gorm.DB, id uint, rating int) error {
	return r.UpdateFields(db, id, map[string]interface{}{"rating": rating})
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
