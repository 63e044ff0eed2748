package controllers

import (
	"errors"
	"net/http"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/app/services"
	"github.com/aranya-labs/aranya/pkg/response"
)

type ProductController struct {
	service  *services.ProductService
	products *repositories.ProductRepository
}

func NewProductController() *ProductController {
	return &ProductController{
		service:  services.NewProductService(),
		products: repositories.NewProductRepository(),
	}
}

func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.ProductFilter{
		Category: q.Get("category"),
		Brand:    uint(queryInt(r, "brand", 0)),
		Search:   q.Get("search"),
		Featured: q.Get("featured") == "true",
		Page:     queryInt(r, "page", 1),
		PerPage:  queryInt(r, "per_page", 20),
	}

	products, pagination, err := c.service.List(filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load products")
		return
	}
	response.Paginated(w, products, pagination)
}

func (c *ProductController) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.Featured()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load products")
		return
	}
	response.Success(w, products)
}

func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	product, err := c.service.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load product")
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Related(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	products, err := c.service.Related(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load products")
		return
	}
	response.Success(w, products)
}

type productInput struct {
	Name              string  `json:"name" validate:"required,min=2,max=255"`
	Slug              string  `json:"slug" validate:"nullable,alpha_dash"`
	Description       string  `json:"description"`
	Price             float64 `json:"price" validate:"required,gte=0"`
	CompareAtPrice    float64 `json:"compare_at_price" validate:"gte=0"`
	Category          string  `json:"category" validate:"required,max=100"`
	Subcategory       string  `json:"subcategory" validate:"max=100"`
	BrandID           *uint   `json:"brand_id"`
	Stock             int     `json:"stock" validate:"gte=0"`
	LowStockThreshold int     `json:"low_stock_threshold" validate:"gte=0"`
	IsFeatured        bool    `json:"is_featured" validate:"boolean"`
	IsActive          bool    `json:"is_active" validate:"boolean"`
	CommissionRate    float64 `json:"commission_rate" validate:"gte=0,lte=100"`
}

func (in *productInput) apply(p *models.Product) {
	p.Name = in.Name
	if in.Slug != "" {
		p.Slug = in.Slug
	}
	p.Description = in.Description
	p.Price = in.Price
	p.CompareAtPrice = in.CompareAtPrice
	p.Category = in.Category
	p.Subcategory = in.Subcategory
	p.BrandID = in.BrandID
	p.Stock = in.Stock
	if in.LowStockThreshold > 0 {
		p.LowStockThreshold = in.LowStockThreshold
	}
	p.IsFeatured = in.IsFeatured
	p.IsActive = in.IsActive
	p.CommissionRate = in.CommissionRate
}

func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if !bindJSON(w, r, &in) {
		return
	}

	var product models.Product
	product.IsActive = true
	in.apply(&product)
	if err := c.service.Create(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not create product")
		return
	}
	response.Created(w, product)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	product, err := c.service.Get(id)
	if err != nil {
		response.NotFound(w)
		return
	}

	var in productInput
	if !bindJSON(w, r, &in) {
		return
	}
	in.apply(&product)
	if err := c.service.Update(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update product")
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.service.Delete(id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not delete product")
		return
	}
	response.Message(w, "product deleted")
}

type variantInput struct {
	SKU           string  `json:"sku" validate:"required,alpha_dash,max=100"`
	Size          string  `json:"size" validate:"max=50"`
	Color         string  `json:"color" validate:"max=50"`
	PriceModifier float64 `json:"price_modifier"`
	Stock         int     `json:"stock" validate:"gte=0"`
}

func (c *ProductController) StoreVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := c.service.Get(id); err != nil {
		response.NotFound(w)
		return
	}

	var in variantInput
	if !bindJSON(w, r, &in) {
		return
	}
	variant := models.ProductVariant{
		ProductID:     id,
		SKU:           in.SKU,
		Size:          in.Size,
		Color:         in.Color,
		PriceModifier: in.PriceModifier,
		Stock:         in.Stock,
	}
	if err := c.products.CreateVariant(&variant); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not create variant")
		return
	}
	response.Created(w, variant)
}

type imageInput struct {
	URL       string `json:"url" validate:"required,url,max=500"`
	AltText   string `json:"alt_text" validate:"max=255"`
	Position  int    `json:"position" validate:"gte=0"`
	IsPrimary bool   `json:"is_primary" validate:"boolean"`
}

func (c *ProductController) StoreImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := c.service.Get(id); err != nil {
		response.NotFound(w)
		return
	}

	var in imageInput
	if !bindJSON(w, r, &in) {
		return
	}
	img := models.ProductImage{
		ProductID: id,
		URL:       in.URL,
		AltText:   in.AltText,
		Position:  in.Position,
		IsPrimary: in.IsPrimary,
	}
	if err := c.products.CreateImage(&img); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not attach image")
		return
	}
	response.Created(w, img)
}
