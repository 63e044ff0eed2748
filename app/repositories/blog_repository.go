package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/orm"
)

// BlogRepository handles blog posts and announcements.
type BlogRepository struct{}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{}
}

// List returns posts, drafts included only when withDrafts is set.
func (r *BlogRepository) List(withDrafts bool, page, limit int) ([]models.Blog, orm.Pagination, error) {
	q := orm.DB().Model(&models.Blog{})
	if !withDrafts {
		q = q.Where("is_published = ?", true)
	}
	var blogs []models.Blog
	pagination, err := q.Order("created_at DESC").GetWithPagination(&blogs, page, limit)
	return blogs, pagination, err
}

// FindBySlug loads one post by slug.
func (r *BlogRepository) FindBySlug(slug string) (models.Blog, error) {
	var b models.Blog
	err := orm.DB().Model(&models.Blog{}).Where("slug = ?", slug).First(&b)
	return b, err
}

// FindByID loads one post by primary key.
func (r *BlogRepository) FindByID(id uint) (models.Blog, error) {
	var b models.Blog
	err := orm.DB().Model(&models.Blog{}).Where("id = ?", id).First(&b)
	return b, err
}

// IncrementViews bumps the view counter without racing readers.
func (r *BlogRepository) IncrementViews(id uint) error {
	return orm.DB().Model(&models.Blog{}).Where("id = ?", id).
		Updates(map[string]interface{}{"views": gorm.Expr("views + 1")})
}

// Create persists a new post.
func (r *BlogRepository) Create(b *models.Blog) error {
	return orm.DB().Create(b)
}

// Update persists post changes.
func (r *BlogRepository) Update(b *models.Blog) error {
	return orm.DB().Save(b)
}

// Delete soft-deletes a post.
func (r *BlogRepository) Delete(id uint) error {
	return orm.DB().Where("id = ?", id).Delete(&models.Blog{})
}

// ActiveAnnouncements returns announcements inside their window.
// popupsOnly restricts to popup banners.
func (r *BlogRepository) ActiveAnnouncements(popupsOnly bool) ([]models.Announcement, error) {
	now := time.Now()
	q := orm.DB().Model(&models.Announcement{}).
		Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now)
	if popupsOnly {
		q = q.Where("is_popup = ?", true)
	}
	var out []models.Announcement
	err := q.Order("created_at DESC").Get(&out)
	return out, err
}

// FindAnnouncement loads one announcement.
func (r *BlogRepository) FindAnnouncement(id uint) (models.Announcement, error) {
	var a models.Announcement
	err := orm.DB().Model(&models.Announcement{}).Where("id = ?", id).First(&a)
	return a, err
}

// CreateAnnouncement persists a new announcement.
func (r *BlogRepository) CreateAnnouncement(a *models.Announcement) error {
	return orm.DB().Create(a)
}

// UpdateAnnouncement persists announcement changes.
func (r *BlogRepository) UpdateAnnouncement(a *models.Announcement) error {
	return orm.DB().Save(a)
}

// DeleteAnnouncement soft-deletes an announcement.
func (r *BlogRepository) DeleteAnnouncement(id uint) error {
	return orm.DB().Where("id = ?", id).Delete(&models.Announcement{})
}
