package barcode

// Open Food Facts v2 product payload. Only the fields we map are declared.
type offResponse struct {
	Status  int         `json:"status"`
	Code    string      `json:"code"`
	Product *offProduct `json:"product"`
}

type offProduct struct {
	ProductName     string   `json:"product_name"`
	Brands          string   `json:"brands"`
	Categories      string   `json:"categories"`
	CategoriesTags  []string `json:"categories_tags"`
	Quantity        string   `json:"quantity"`
	ImageFrontURL   string   `json:"image_front_url"`
	IngredientsText string   `json:"ingredients_text"`
	NutriscoreGrade string   `json:"nutriscore_grade"`
}
