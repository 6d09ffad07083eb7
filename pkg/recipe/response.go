package recipe

// Spoonacular payloads. Only the fields we map are declared.
type (
	apiSearchResponse struct {
		Results      []apiRecipe `json:"results"`
		TotalResults int         `json:"totalResults"`
	}

	apiRecipe struct {
		ID                   int                     `json:"id"`
		Title                string                  `json:"title"`
		Image                string                  `json:"image"`
		ReadyInMinutes       *int                    `json:"readyInMinutes"`
		Servings             *int                    `json:"servings"`
		SourceURL            string                  `json:"sourceUrl"`
		SourceName           string                  `json:"sourceName"`
		Summary              string                  `json:"summary"`
		Diets                []string                `json:"diets"`
		DishTypes            []string                `json:"dishTypes"`
		Cuisines             []string                `json:"cuisines"`
		Vegetarian           bool                    `json:"vegetarian"`
		Vegan                bool                    `json:"vegan"`
		GlutenFree           bool                    `json:"glutenFree"`
		DairyFree            bool                    `json:"dairyFree"`
		HealthScore          *float64                `json:"healthScore"`
		ExtendedIngredients  []apiExtendedIngredient `json:"extendedIngredients"`
		AnalyzedInstructions []apiInstructionGroup   `json:"analyzedInstructions"`
		Instructions         *string                 `json:"instructions"`
	}

	apiExtendedIngredient struct {
		ID       *int     `json:"id"`
		Name     string   `json:"name"`
		Original string   `json:"original"`
		Amount   *float64 `json:"amount"`
		Unit     string   `json:"unit"`
		Image    *string  `json:"image"`
	}

	apiInstructionGroup struct {
		Name  string    `json:"name"`
		Steps []apiStep `json:"steps"`
	}

	apiStep struct {
		Number      int        `json:"number"`
		Step        string     `json:"step"`
		Ingredients []apiNamed `json:"ingredients"`
		Equipment   []apiNamed `json:"equipment"`
	}

	apiNamed struct {
		Name string `json:"name"`
	}

	apiByIngredientResult struct {
		ID                    int                `json:"id"`
		Title                 string             `json:"title"`
		Image                 string             `json:"image"`
		UsedIngredientCount   int                `json:"usedIngredientCount"`
		MissedIngredientCount int                `json:"missedIngredientCount"`
		UsedIngredients       []apiIngredientRef `json:"usedIngredients"`
		MissedIngredients     []apiIngredientRef `json:"missedIngredients"`
	}

	apiIngredientRef struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}
)
