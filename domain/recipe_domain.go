package domain

import "fmt"

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"

	ErrRecipeNotFound = fmt.Errorf("recipe %w", ErrNotFound)
)

const (
	RankingMaximizeUsed    = 1
	RankingMinimizeMissing = 2
)

type (
	RecipeSearchQuery struct {
		Query        string `query:"query"`
		Ingredients  string `query:"ingredients"`
		Diet         string `query:"diet"`
		MaxReadyTime int    `query:"max_ready_time" validate:"omitempty,min=1,max=300"`
		Number       int    `query:"number" validate:"min=1,max=50"`
		Offset       int    `query:"offset" validate:"gte=0"`
	}

	RecipeByIngredientsQuery struct {
		Ingredients  string `query:"ingredients" validate:"required"`
		Number       int    `query:"number" validate:"min=1,max=50"`
		MaximizeUsed bool   `query:"maximize_used"`
	}

	ExpiringRecipesQuery struct {
		Ingredients string `query:"ingredients" validate:"required"`
		Number      int    `query:"number" validate:"min=1,max=20"`
	}

	// RecipeSearchParams is the normalized input of a recipe search.
	RecipeSearchParams struct {
		Query        string
		Ingredients  []string
		Diet         string
		MaxReadyTime int
		Number       int
		Offset       int
	}

	RecipeSummary struct {
		ID             int      `json:"id"`
		Title          string   `json:"title"`
		Image          string   `json:"image"`
		ReadyInMinutes *int     `json:"ready_in_minutes"`
		Servings       *int     `json:"servings"`
		SourceURL      string   `json:"source_url"`
		Diets          []string `json:"diets"`
		DishTypes      []string `json:"dish_types"`
		Vegetarian     bool     `json:"vegetarian"`
		Vegan          bool     `json:"vegan"`
		GlutenFree     bool     `json:"gluten_free"`
		DairyFree      bool     `json:"dairy_free"`
		HealthScore    *float64 `json:"health_score"`
	}

	RecipeSearchResponse struct {
		Results      []RecipeSummary `json:"results"`
		TotalResults int             `json:"total_results"`
	}

	IngredientInfo struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}

	RecipeByIngredientResult struct {
		ID                    int              `json:"id"`
		Title                 string           `json:"title"`
		Image                 string           `json:"image"`
		UsedIngredientCount   int              `json:"used_ingredient_count"`
		MissedIngredientCount int              `json:"missed_ingredient_count"`
		UsedIngredients       []IngredientInfo `json:"used_ingredients"`
		MissedIngredients     []IngredientInfo `json:"missed_ingredients"`
	}

	RecipeByIngredientResponse struct {
		Results []RecipeByIngredientResult `json:"results"`
	}

	RecipeIngredient struct {
		ID       *int     `json:"id"`
		Name     string   `json:"name"`
		Original string   `json:"original"`
		Amount   *float64 `json:"amount"`
		Unit     string   `json:"unit"`
		Image    *string  `json:"image"`
	}

	RecipeInstruction struct {
		Number      int      `json:"number"`
		Step        string   `json:"step"`
		Ingredients []string `json:"ingredients"`
		Equipment   []string `json:"equipment"`
	}

	RecipeDetail struct {
		RecipeSummary
		SourceName       string              `json:"source_name"`
		Summary          string              `json:"summary"`
		Cuisines         []string            `json:"cuisines"`
		Ingredients      []RecipeIngredient  `json:"ingredients"`
		Instructions     []RecipeInstruction `json:"instructions"`
		InstructionsText string              `json:"instructions_text"`
	}
)
