package domain

import "fmt"

const ProductSourceOpenFoodFacts = "open_food_facts"

var (
	MessageSuccessLookupBarcode = "product found"
	MessageFailedLookupBarcode  = "failed to look up barcode"

	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
)

type ProductResponse struct {
	Barcode           string `json:"barcode"`
	Name              string `json:"name"`
	Brand             string `json:"brand"`
	Categories        string `json:"categories"`
	SuggestedCategory string `json:"suggested_category"`
	QuantityString    string `json:"quantity_string"`
	ImageURL          string `json:"image_url"`
	IngredientsText   string `json:"ingredients_text"`
	NutriscoreGrade   string `json:"nutriscore_grade"`
	Source            string `json:"source"`
}

// IsValidBarcode accepts EAN-8, UPC-A, EAN-13 and ITF-14 codes.
func IsValidBarcode(code string) bool {
	switch len(code) {
	case 8, 12, 13, 14:
	default:
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
