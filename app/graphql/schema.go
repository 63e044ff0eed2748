// Package graphql exposes a read-only catalog API at /api/graphql.
// Mutations stay on the REST surface.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/aranya-labs/aranya/app/repositories"
	gql "github.com/aranya-labs/aranya/pkg/graphql"
)

var imageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductImage",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.Int},
		"url":       &graphql.Field{Type: graphql.String},
		"altText":   &graphql.Field{Type: graphql.String},
		"position":  &graphql.Field{Type: graphql.Int},
		"isPrimary": &graphql.Field{Type: graphql.Boolean},
	},
})

var variantType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductVariant",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.Int},
		"sku":           &graphql.Field{Type: graphql.String},
		"size":          &graphql.Field{Type: graphql.String},
		"color":         &graphql.Field{Type: graphql.String},
		"priceModifier": &graphql.Field{Type: graphql.Float},
		"stock":         &graphql.Field{Type: graphql.Int},
	},
})

var brandType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Brand",
	Fields: graphql.Fields{
		"id":      &graphql.Field{Type: graphql.Int},
		"name":    &graphql.Field{Type: graphql.String},
		"slug":    &graphql.Field{Type: graphql.String},
		"logoUrl": &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":             &graphql.Field{Type: graphql.Int},
		"name":           &graphql.Field{Type: graphql.String},
		"slug":           &graphql.Field{Type: graphql.String},
		"description":    &graphql.Field{Type: graphql.String},
		"price":          &graphql.Field{Type: graphql.Float},
		"compareAtPrice": &graphql.Field{Type: graphql.Float},
		"category":       &graphql.Field{Type: graphql.String},
		"subcategory":    &graphql.Field{Type: graphql.String},
		"stock":          &graphql.Field{Type: graphql.Int},
		"isFeatured":     &graphql.Field{Type: graphql.Boolean},
		"brand":          &graphql.Field{Type: brandType},
		"images":         &graphql.Field{Type: graphql.NewList(imageType)},
		"variants":       &graphql.Field{Type: graphql.NewList(variantType)},
	},
})

// NewCatalogSchema builds the catalog query schema over the product
// repository. Field names are camelCase; gorm models resolve through
// the default FieldResolveFn which reads json tags.
func NewCatalogSchema() (graphql.Schema, error) {
	products := repositories.NewProductRepository()

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"brand":    &graphql.ArgumentConfig{Type: graphql.Int},
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
					"featured": &graphql.ArgumentConfig{Type: graphql.Boolean},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"perPage":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := repositories.ProductFilter{
						Page:    p.Args["page"].(int),
						PerPage: p.Args["perPage"].(int),
					}
					if v, ok := p.Args["category"].(string); ok {
						filter.Category = v
					}
					if v, ok := p.Args["brand"].(int); ok {
						filter.Brand = uint(v)
					}
					if v, ok := p.Args["search"].(string); ok {
						filter.Search = v
					}
					if v, ok := p.Args["featured"].(bool); ok {
						filter.Featured = v
					}
					out, _, err := products.List(filter)
					return out, err
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return products.FindByID(uint(p.Args["id"].(int)))
				},
			},
			"brands": &graphql.Field{
				Type: graphql.NewList(brandType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return products.Brands()
				},
			},
		},
	})

	return gql.NewSchema(query)
}
