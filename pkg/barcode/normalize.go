package barcode

import (
	"strings"

	"freshtrack-backend/domain"
)

type categoryKeyword struct {
	keyword  string
	category string
}

// categoryKeywords is scanned in order; the first keyword contained in a tag
// decides the category.
var categoryKeywords = []categoryKeyword{
	{"dairy", domain.CategoryDairy},
	{"milk", domain.CategoryDairy},
	{"cheese", domain.CategoryDairy},
	{"yogurt", domain.CategoryDairy},
	{"butter", domain.CategoryDairy},
	{"meat", domain.CategoryMeat},
	{"beef", domain.CategoryMeat},
	{"pork", domain.CategoryMeat},
	{"chicken", domain.CategoryMeat},
	{"turkey", domain.CategoryMeat},
	{"sausage", domain.CategoryMeat},
	{"fish", domain.CategorySeafood},
	{"seafood", domain.CategorySeafood},
	{"shrimp", domain.CategorySeafood},
	{"tuna", domain.CategorySeafood},
	{"salmon", domain.CategorySeafood},
	{"fruit", domain.CategoryProduce},
	{"vegetable", domain.CategoryProduce},
	{"salad", domain.CategoryProduce},
	{"bread", domain.CategoryBakery},
	{"pastry", domain.CategoryBakery},
	{"cake", domain.CategoryBakery},
	{"frozen", domain.CategoryFrozen},
	{"ice-cream", domain.CategoryFrozen},
	{"beverage", domain.CategoryBeverages},
	{"drink", domain.CategoryBeverages},
	{"juice", domain.CategoryBeverages},
	{"water", domain.CategoryBeverages},
	{"soda", domain.CategoryBeverages},
	{"coffee", domain.CategoryBeverages},
	{"tea", domain.CategoryBeverages},
	{"sauce", domain.CategoryCondiments},
	{"condiment", domain.CategoryCondiments},
	{"ketchup", domain.CategoryCondiments},
	{"mustard", domain.CategoryCondiments},
	{"mayonnaise", domain.CategoryCondiments},
	{"snack", domain.CategorySnacks},
	{"chip", domain.CategorySnacks},
	{"cookie", domain.CategorySnacks},
	{"cracker", domain.CategorySnacks},
	{"candy", domain.CategorySnacks},
	{"chocolate", domain.CategorySnacks},
	{"cereal", domain.CategoryPantry},
	{"pasta", domain.CategoryPantry},
	{"rice", domain.CategoryPantry},
	{"canned", domain.CategoryPantry},
	{"flour", domain.CategoryPantry},
	{"sugar", domain.CategoryPantry},
	{"oil", domain.CategoryPantry},
}

// MapCategory picks the grocery category for a list of upstream category
// tags. Tags are checked in order and the first match wins.
func MapCategory(tags []string) string {
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for _, ck := range categoryKeywords {
			if strings.Contains(lower, ck.keyword) {
				return ck.category
			}
		}
	}
	return domain.CategoryOther
}

// NormalizeProduct maps an upstream product into the response shape.
// It returns nil when the product has no usable name.
func NormalizeProduct(code string, p offProduct) *domain.ProductResponse {
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		return nil
	}

	return &domain.ProductResponse{
		Barcode:           code,
		Name:              name,
		Brand:             p.Brands,
		Categories:        p.Categories,
		SuggestedCategory: MapCategory(p.CategoriesTags),
		QuantityString:    p.Quantity,
		ImageURL:          p.ImageFrontURL,
		IngredientsText:   p.IngredientsText,
		NutriscoreGrade:   p.NutriscoreGrade,
		Source:            domain.ProductSourceOpenFoodFacts,
	}
}
