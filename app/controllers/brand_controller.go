package controllers

import (
	"net/http"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/pkg/response"
)

type BrandController struct {
	products *repositories.ProductRepository
}

func NewBrandController() *BrandController {
	return &BrandController{products: repositories.NewProductRepository()}
}

func (c *BrandController) Index(w http.ResponseWriter, r *http.Request) {
	brands, err := c.products.Brands()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load brands")
		return
	}
	response.Success(w, brands)
}

type brandInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Slug     string `json:"slug" validate:"required,alpha_dash,max=100"`
	LogoURL  string `json:"logo_url" validate:"nullable,url,max=500"`
	IsActive bool   `json:"is_active" validate:"boolean"`
}

func (in *brandInput) apply(b *models.Brand) {
	b.Name = in.Name
	b.Slug = in.Slug
	b.LogoURL = in.LogoURL
	b.IsActive = in.IsActive
}

func (c *BrandController) Store(w http.ResponseWriter, r *http.Request) {
	var in brandInput
	if !bindJSON(w, r, &in) {
		return
	}

	var brand models.Brand
	in.apply(&brand)
	if err := c.products.CreateBrand(&brand); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not create brand")
		return
	}
	response.Created(w, brand)
}

func (c *BrandController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	brand, err := c.products.FindBrand(id)
	if err != nil {
		response.NotFound(w)
		return
	}

	var in brandInput
	if !bindJSON(w, r, &in) {
		return
	}
	in.apply(&brand)
	if err := c.products.UpdateBrand(&brand); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update brand")
		return
	}
	response.Success(w, brand)
}

func (c *BrandController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.products.DeleteBrand(id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not delete brand")
		return
	}
	response.Message(w, "brand deleted")
}
