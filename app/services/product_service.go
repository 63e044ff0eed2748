package services

import (
	"fmt"
	"time"

	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/app/repositories"
	"github.com/aranya-labs/aranya/pkg/cache"
	"github.com/aranya-labs/aranya/pkg/orm"
)

const featuredCacheKey = "catalog:featured"

// ProductService fronts the catalogue repository and keeps the hot
// featured list in Redis. Cache misses fall through to the database, so
// a dead Redis only costs speed.
type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService() *ProductService {
	return &ProductService{products: repositories.NewProductRepository()}
}

// List proxies filtered catalogue queries.
func (s *ProductService) List(f repositories.ProductFilter) ([]models.Product, orm.Pagination, error) {
	return s.products.List(f)
}

// Featured returns the featured products, cached for five minutes.
func (s *ProductService) Featured() ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(featuredCacheKey, &cached) {
		return cached, nil
	}

	products, _, err := s.products.List(repositories.ProductFilter{Featured: true, PerPage: 20})
	if err != nil {
		return nil, err
	}
	_ = cache.Set(featuredCacheKey, products, 5*time.Minute)
	return products, nil
}

// Get loads one product.
func (s *ProductService) Get(id uint) (models.Product, error) {
	p, err := s.products.FindByID(id)
	if orm.IsNotFound(err) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Related returns products sharing the category.
func (s *ProductService) Related(id uint) ([]models.Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return s.products.Related(p, 8)
}

// Create persists a product and invalidates the featured cache.
func (s *ProductService) Create(p *models.Product) error {
	if p.Slug == "" {
		p.Slug = slugify(p.Name)
	}
	if err := s.products.Create(p); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Update persists product changes and invalidates the featured cache.
func (s *ProductService) Update(p *models.Product) error {
	if err := s.products.Update(p); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Delete soft-deletes a product.
func (s *ProductService) Delete(id uint) error {
	if err := s.products.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *ProductService) invalidate() {
	_ = cache.Forget(featuredCacheKey)
}

// slugify lowers a name into a URL slug.
func slugify(name string) string {
	out := make([]rune, 0, len(name))
	lastDash := false
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
			lastDash = false
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			out = append(out, r)
			lastDash = false
		default:
			if !lastDash && len(out) > 0 {
				out = append(out, '-')
				lastDash = true
			}
		}
	}
	if lastDash && len(out) > 0 {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return fmt.Sprintf("p-%d", time.Now().UnixNano())
	}
	return string(out)
}
