package handlers

import (
	"freshtrack-backend/domain"
	"freshtrack-backend/internal/api/presenters"
	"freshtrack-backend/internal/utils"
	"freshtrack-backend/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const defaultRecipeNumber = 10

type (
	RecipeHandler interface {
		SearchRecipes(c *fiber.Ctx) error
		SearchByIngredients(c *fiber.Ctx) error
		GetExpiringRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	q := domain.RecipeSearchQuery{Number: defaultRecipeNumber}
	if err := c.QueryParser(&q); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedQueryRequest, err)
	}
	if err := h.validator.Struct(q); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, utils.TranslateValidation(err))
	}

	res, err := h.recipeService.SearchRecipes(c.Context(), domain.RecipeSearchParams{
		Query:        q.Query,
		Ingredients:  recipe.SplitIngredients(q.Ingredients),
		Diet:         q.Diet,
		MaxReadyTime: q.MaxReadyTime,
		Number:       q.Number,
		Offset:       q.Offset,
	})
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) SearchByIngredients(c *fiber.Ctx) error {
	q := domain.RecipeByIngredientsQuery{Number: defaultRecipeNumber, MaximizeUsed: true}
	if err := c.QueryParser(&q); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedQueryRequest, err)
	}
	if err := h.validator.Struct(q); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, utils.TranslateValidation(err))
	}

	res, err := h.recipeService.SearchByIngredients(c.Context(), recipe.SplitIngredients(q.Ingredients), q.Number, q.MaximizeUsed)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetExpiringRecipes(c *fiber.Ctx) error {
	q := domain.ExpiringRecipesQuery{Number: defaultRecipeNumber}
	if err := c.QueryParser(&q); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedQueryRequest, err)
	}
	if err := h.validator.Struct(q); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, utils.TranslateValidation(err))
	}

	res, err := h.recipeService.GetExpiringRecipes(c.Context(), recipe.SplitIngredients(q.Ingredients), q.Number)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, domain.NewValidationError("id", "must be a positive integer"))
	}

	res, err := h.recipeService.GetRecipeDetail(c.Context(), id)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}
