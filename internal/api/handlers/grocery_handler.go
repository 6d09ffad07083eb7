package handlers

import (
	"freshtrack-backend/domain"
	"freshtrack-backend/internal/api/presenters"
	"freshtrack-backend/internal/utils"
	"freshtrack-backend/pkg/grocery"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GroceryHandler interface {
		GetGroceries(c *fiber.Ctx) error
		CreateGrocery(c *fiber.Ctx) error
		GetGrocery(c *fiber.Ctx) error
		UpdateGrocery(c *fiber.Ctx) error
		DeleteGrocery(c *fiber.Ctx) error
		ConsumeGrocery(c *fiber.Ctx) error
		UploadGroceryImage(c *fiber.Ctx) error
		SyncGroceries(c *fiber.Ctx) error
	}

	groceryHandler struct {
		groceryService grocery.GroceryService
		validator      *validator.Validate
	}
)

func NewGroceryHandler(groceryService grocery.GroceryService, validator *validator.Validate) GroceryHandler {
	return &groceryHandler{
		groceryService: groceryService,
		validator:      validator,
	}
}

func (h *groceryHandler) GetGroceries(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	filter := domain.GroceryListFilter{Limit: domain.DefaultGroceryLimit}

	if err := c.QueryParser(&filter); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedQueryRequest, err)
	}
	if err := h.validator.Struct(filter); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetGroceries, utils.TranslateValidation(err))
	}

	res, err := h.groceryService.ListGroceries(c.Context(), filter, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetGroceries, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGroceries)
}

func (h *groceryHandler) CreateGrocery(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.GroceryItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateGrocery, utils.TranslateValidation(err))
	}

	res, err := h.groceryService.CreateGrocery(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateGrocery, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateGrocery)
}

func (h *groceryHandler) GetGrocery(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.groceryService.GetGrocery(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetGrocery, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGrocery)
}

func (h *groceryHandler) UpdateGrocery(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateGroceryItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateGrocery, utils.TranslateValidation(err))
	}

	res, err := h.groceryService.UpdateGrocery(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdateGrocery, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateGrocery)
}

func (h *groceryHandler) DeleteGrocery(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.groceryService.DeleteGrocery(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteGrocery, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *groceryHandler) ConsumeGrocery(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.groceryService.ConsumeGrocery(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedConsumeGrocery, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConsumeGrocery)
}

func (h *groceryHandler) UploadGroceryImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, domain.NewValidationError("image", "is required"))
	}

	res, err := h.groceryService.UploadGroceryImage(c.Context(), c.Params("id"), domain.UploadGroceryImageRequest{Image: image}, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *groceryHandler) SyncGroceries(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.GrocerySyncRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.groceryService.SyncGroceries(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSyncGroceries, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSyncGroceries)
}
