package recipe

import (
	"freshtrack-backend/domain"
)

const ingredientImageBaseURL = "https://spoonacular.com/cdn/ingredients_100x100/"

func NormalizeSummary(r apiRecipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:             r.ID,
		Title:          r.Title,
		Image:          r.Image,
		ReadyInMinutes: r.ReadyInMinutes,
		Servings:       r.Servings,
		SourceURL:      r.SourceURL,
		Diets:          orEmpty(r.Diets),
		DishTypes:      orEmpty(r.DishTypes),
		Vegetarian:     r.Vegetarian,
		Vegan:          r.Vegan,
		GlutenFree:     r.GlutenFree,
		DairyFree:      r.DairyFree,
		HealthScore:    r.HealthScore,
	}
}

func NormalizeSearch(resp apiSearchResponse) domain.RecipeSearchResponse {
	results := make([]domain.RecipeSummary, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, NormalizeSummary(r))
	}
	return domain.RecipeSearchResponse{
		Results:      results,
		TotalResults: resp.TotalResults,
	}
}

func NormalizeByIngredient(r apiByIngredientResult) domain.RecipeByIngredientResult {
	return domain.RecipeByIngredientResult{
		ID:                    r.ID,
		Title:                 r.Title,
		Image:                 r.Image,
		UsedIngredientCount:   r.UsedIngredientCount,
		MissedIngredientCount: r.MissedIngredientCount,
		UsedIngredients:       ingredientInfos(r.UsedIngredients),
		MissedIngredients:     ingredientInfos(r.MissedIngredients),
	}
}

func NormalizeByIngredients(results []apiByIngredientResult) domain.RecipeByIngredientResponse {
	out := make([]domain.RecipeByIngredientResult, 0, len(results))
	for _, r := range results {
		out = append(out, NormalizeByIngredient(r))
	}
	return domain.RecipeByIngredientResponse{Results: out}
}

// NormalizeDetail keeps only the first instruction group.
func NormalizeDetail(r apiRecipe) domain.RecipeDetail {
	ingredients := make([]domain.RecipeIngredient, 0, len(r.ExtendedIngredients))
	for _, ing := range r.ExtendedIngredients {
		ingredients = append(ingredients, domain.RecipeIngredient{
			ID:       ing.ID,
			Name:     ing.Name,
			Original: ing.Original,
			Amount:   ing.Amount,
			Unit:     ing.Unit,
			Image:    ingredientImageURL(ing.Image),
		})
	}

	instructions := []domain.RecipeInstruction{}
	if len(r.AnalyzedInstructions) > 0 {
		for _, step := range r.AnalyzedInstructions[0].Steps {
			instructions = append(instructions, domain.RecipeInstruction{
				Number:      step.Number,
				Step:        step.Step,
				Ingredients: names(step.Ingredients),
				Equipment:   names(step.Equipment),
			})
		}
	}

	var text string
	if r.Instructions != nil {
		text = *r.Instructions
	}

	return domain.RecipeDetail{
		RecipeSummary:    NormalizeSummary(r),
		SourceName:       r.SourceName,
		Summary:          r.Summary,
		Cuisines:         orEmpty(r.Cuisines),
		Ingredients:      ingredients,
		Instructions:     instructions,
		InstructionsText: text,
	}
}

func ingredientImageURL(image *string) *string {
	if image == nil || *image == "" {
		return nil
	}
	u := ingredientImageBaseURL + *image
	return &u
}

func ingredientInfos(refs []apiIngredientRef) []domain.IngredientInfo {
	out := make([]domain.IngredientInfo, 0, len(refs))
	for _, ref := range refs {
		out = append(out, domain.IngredientInfo{Name: ref.Name, Image: ref.Image})
	}
	return out
}

func names(in []apiNamed) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		out = append(out, n.Name)
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
