package models

import (
	"time"

	"gorm.io/gorm"
)

// Blog is a marketing post. Draft posts are only visible to admins.
type Blog struct {
	gorm.Model
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"size:500" json:"excerpt"`
	Content     string     `gorm:"type:text" json:"content"`
	CoverURL    string     `gorm:"size:500" json:"cover_url"`
	AuthorID    uint       `gorm:"index" json:"author_id"`
	Tags        string     `gorm:"size:255" json:"tags"` // comma separated
	IsPublished bool       `gorm:"default:false;index" json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Views       int64      `gorm:"default:0" json:"views"`
}

// Announcement is a storefront banner or popup shown inside its window.
type Announcement struct {
	gorm.Model
	Title    string     `gorm:"size:255;not null" json:"title"`
	Body     string     `gorm:"type:text" json:"body"`
	LinkURL  string     `gorm:"size:500" json:"link_url,omitempty"`
	IsPopup  bool       `gorm:"default:false" json:"is_popup"`
	IsActive bool       `gorm:"default:true" json:"is_active"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}
