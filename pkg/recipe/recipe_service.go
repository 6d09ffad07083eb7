package recipe

import (
	"context"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/pkg/cache"
)

const (
	SearchTTL        = time.Hour
	ByIngredientsTTL = time.Hour
	DetailTTL        = 24 * time.Hour
	NotFoundTTL      = time.Hour
)

type (
	RecipeService interface {
		SearchRecipes(ctx context.Context, params domain.RecipeSearchParams) (domain.RecipeSearchResponse, error)
		SearchByIngredients(ctx context.Context, ingredients []string, number int, maximizeUsed bool) (domain.RecipeByIngredientResponse, error)
		GetExpiringRecipes(ctx context.Context, ingredients []string, number int) (domain.RecipeByIngredientResponse, error)
		GetRecipeDetail(ctx context.Context, id int) (domain.RecipeDetail, error)
	}

	// Policies sets the cache expiry of each recipe lookup.
	Policies struct {
		Search        cache.Policy
		ByIngredients cache.Policy
		Detail        cache.Policy
	}

	recipeService struct {
		provider      RecipeProvider
		search        *cache.Gateway[domain.RecipeSearchResponse]
		byIngredients *cache.Gateway[domain.RecipeByIngredientResponse]
		detail        *cache.Gateway[domain.RecipeDetail]
	}
)

func DefaultPolicies() Policies {
	return Policies{
		Search:        cache.Policy{PositiveTTL: SearchTTL, NegativeTTL: NotFoundTTL},
		ByIngredients: cache.Policy{PositiveTTL: ByIngredientsTTL, NegativeTTL: NotFoundTTL},
		Detail:        cache.Policy{PositiveTTL: DetailTTL, NegativeTTL: NotFoundTTL},
	}
}

func NewRecipeService(provider RecipeProvider, store cache.Store, policies Policies) RecipeService {
	return &recipeService{
		provider:      provider,
		search:        cache.NewGateway[domain.RecipeSearchResponse]("recipe_search", store, policies.Search),
		byIngredients: cache.NewGateway[domain.RecipeByIngredientResponse]("recipe_by_ingredients", store, policies.ByIngredients),
		detail:        cache.NewGateway[domain.RecipeDetail]("recipe_detail", store, policies.Detail),
	}
}

// SearchRecipes resolves to an empty page when the upstream has nothing.
func (s *recipeService) SearchRecipes(ctx context.Context, params domain.RecipeSearchParams) (domain.RecipeSearchResponse, error) {
	params.Ingredients = NormalizeIngredients(params.Ingredients)

	res, ok := s.search.Lookup(ctx, SearchCacheKey(params), func(ctx context.Context) (*domain.RecipeSearchResponse, error) {
		return s.provider.SearchRecipes(ctx, params)
	})
	if !ok {
		return domain.RecipeSearchResponse{Results: []domain.RecipeSummary{}}, nil
	}
	return *res, nil
}

func (s *recipeService) SearchByIngredients(ctx context.Context, ingredients []string, number int, maximizeUsed bool) (domain.RecipeByIngredientResponse, error) {
	ranking := domain.RankingMinimizeMissing
	if maximizeUsed {
		ranking = domain.RankingMaximizeUsed
	}
	return s.findByIngredients(ctx, ingredients, number, ranking)
}

// GetExpiringRecipes ranks recipes by how many of the given ingredients they
// use up.
func (s *recipeService) GetExpiringRecipes(ctx context.Context, ingredients []string, number int) (domain.RecipeByIngredientResponse, error) {
	return s.findByIngredients(ctx, ingredients, number, domain.RankingMaximizeUsed)
}

func (s *recipeService) findByIngredients(ctx context.Context, ingredients []string, number, ranking int) (domain.RecipeByIngredientResponse, error) {
	ingredients = NormalizeIngredients(ingredients)
	if len(ingredients) == 0 {
		return domain.RecipeByIngredientResponse{}, domain.NewValidationError("ingredients", "at least one ingredient is required")
	}

	res, ok := s.byIngredients.Lookup(ctx, ByIngredientsCacheKey(ingredients, number, ranking), func(ctx context.Context) (*domain.RecipeByIngredientResponse, error) {
		return s.provider.FindByIngredients(ctx, ingredients, number, ranking)
	})
	if !ok {
		return domain.RecipeByIngredientResponse{Results: []domain.RecipeByIngredientResult{}}, nil
	}
	return *res, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, id int) (domain.RecipeDetail, error) {
	if id <= 0 {
		return domain.RecipeDetail{}, domain.NewValidationError("id", "must be a positive integer")
	}

	res, ok := s.detail.Lookup(ctx, DetailCacheKey(id), func(ctx context.Context) (*domain.RecipeDetail, error) {
		return s.provider.GetRecipeInformation(ctx, id)
	})
	if !ok {
		return domain.RecipeDetail{}, domain.ErrRecipeNotFound
	}
	return *res, nil
}
