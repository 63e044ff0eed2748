package repositories

import (
	"time"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/orm"
)

// UserRepository handles database operations for User and its
// password-reset tokens.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// All returns all users with pagination, newest first.
func (r *UserRepository) All(page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := orm.DB().Model(&models.User{}).Order("created_at DESC").GetWithPagination(&users, page, limit)
	return users, pagination, err
}

// CreateResetToken stores a password reset token, replacing any earlier
// tokens for the same user.
func (r *UserRepository) CreateResetToken(t *models.PasswordResetToken) error {
	if err := orm.DB().Where("user_id = ?", t.UserID).Delete(&models.PasswordResetToken{}); err != nil {
		return err
	}
	return orm.DB().Create(t)
}

// FindResetToken returns a live (unexpired) reset token.
func (r *UserRepository) FindResetToken(token string) (models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := orm.DB().Model(&models.PasswordResetToken{}).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&t)
	return t, err
}

// ConsumeResetToken deletes a token after use.
func (r *UserRepository) ConsumeResetToken(token string) error {
	return orm.DB().Where("token = ?", token).Delete(&models.PasswordResetToken{})
}
