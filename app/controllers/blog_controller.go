package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/pkg/middleware"
	"github.com/aranya-labs/aranya/pkg/orm"
	"github.com/aranya-labs/aranya/pkg/response"
)

type BlogController struct {
	blogs *repositories.BlogRepository
}

func NewBlogController() *BlogController {
	return &BlogController{blogs: repositories.NewBlogRepository()}
}

func (c *BlogController) Index(w http.ResponseWriter, r *http.Request) {
	withDrafts := middleware.RoleFromCtx(r.Context()) == models.RoleAdmin
	blogs, pagination, err := c.blogs.List(withDrafts, queryInt(r, "page", 1), queryInt(r, "per_page", 10))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load posts")
		return
	}
	response.Paginated(w, blogs, pagination)
}

func (c *BlogController) Show(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	blog, err := c.blogs.FindBySlug(slug)
	if err != nil {
		response.NotFound(w)
		return
	}
	if !blog.IsPublished && middleware.RoleFromCtx(r.Context()) != models.RoleAdmin {
		response.NotFound(w)
		return
	}

	if err := c.blogs.IncrementViews(blog.ID); err == nil {
		blog.Views++
	}
	response.Success(w, blog)
}

type blogInput struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Slug        string `json:"slug" validate:"required,alpha_dash,max=255"`
	Excerpt     string `json:"excerpt" validate:"max=500"`
	Content     string `json:"content" validate:"required"`
	CoverURL    string `json:"cover_url" validate:"nullable,url,max=500"`
	Tags        string `json:"tags" validate:"max=255"`
	IsPublished bool   `json:"is_published" validate:"boolean"`
}

func (in *blogInput) apply(b *models.Blog) {
	b.Title = in.Title
	b.Slug = in.Slug
	b.Excerpt = in.Excerpt
	b.Content = in.Content
	b.CoverURL = in.CoverURL
	b.Tags = in.Tags
	if in.IsPublished && !b.IsPublished {
		now := time.Now()
		b.PublishedAt = &now
	}
	b.IsPublished = in.IsPublished
}

func (c *BlogController) Store(w http.ResponseWriter, r *http.Request) {
	var in blogInput
	if !bindJSON(w, r, &in) {
		return
	}

	var blog models.Blog
	in.apply(&blog)
	blog.AuthorID = middleware.UserIDFromCtx(r.Context())
	if err := c.blogs.Create(&blog); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not create post")
		return
	}
	response.Created(w, blog)
}

func (c *BlogController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	blog, err := c.blogs.FindByID(id)
	if err != nil {
		response.NotFound(w)
		return
	}

	var in blogInput
	if !bindJSON(w, r, &in) {
		return
	}
	in.apply(&blog)
	if err := c.blogs.Update(&blog); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update post")
		return
	}
	response.Success(w, blog)
}

func (c *BlogController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.blogs.Delete(id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not delete post")
		return
	}
	response.Message(w, "post deleted")
}

// ------------------- Announcements -------------------

func (c *BlogController) Announcements(w http.ResponseWriter, r *http.Request) {
	out, err := c.blogs.ActiveAnnouncements(false)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load announcements")
		return
	}
	response.Success(w, out)
}

func (c *BlogController) Popups(w http.ResponseWriter, r *http.Request) {
	out, err := c.blogs.ActiveAnnouncements(true)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load announcements")
		return
	}
	response.Success(w, out)
}

type announcementInput struct {
	Title    string     `json:"title" validate:"required,min=3,max=255"`
	Body     string     `json:"body" validate:"required"`
	LinkURL  string     `json:"link_url" validate:"nullable,url,max=500"`
	IsPopup  bool       `json:"is_popup" validate:"boolean"`
	IsActive bool       `json:"is_active" validate:"boolean"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

func (in *announcementInput) apply(a *models.Announcement) {
	a.Title = in.Title
	a.Body = in.Body
	a.LinkURL = in.LinkURL
	a.IsPopup = in.IsPopup
	a.IsActive = in.IsActive
	a.StartsAt = in.StartsAt
	a.EndsAt = in.EndsAt
}

func (c *BlogController) StoreAnnouncement(w http.ResponseWriter, r *http.Request) {
	var in announcementInput
	if !bindJSON(w, r, &in) {
		return
	}

	var a models.Announcement
	in.apply(&a)
	if err := c.blogs.CreateAnnouncement(&a); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not create announcement")
		return
	}
	response.Created(w, a)
}

func (c *BlogController) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	a, err := c.blogs.FindAnnouncement(id)
	if err != nil {
		if orm.IsNotFound(err) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load announcement")
		return
	}

	var in announcementInput
	if !bindJSON(w, r, &in) {
		return
	}
	in.apply(&a)
	if err := c.blogs.UpdateAnnouncement(&a); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update announcement")
		return
	}
	response.Success(w, a)
}

func (c *BlogController) DestroyAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.blogs.DeleteAnnouncement(id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not delete announcement")
		return
	}
	response.Message(w, "announcement deleted")
}
