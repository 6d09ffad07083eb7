package handlers

import (
	"freshtrack-backend/domain"
	"freshtrack-backend/internal/api/presenters"
	"freshtrack-backend/pkg/barcode"

	"github.com/gofiber/fiber/v2"
)

type (
	BarcodeHandler interface {
		LookupBarcode(c *fiber.Ctx) error
	}

	barcodeHandler struct {
		barcodeService barcode.BarcodeService
	}
)

func NewBarcodeHandler(barcodeService barcode.BarcodeService) BarcodeHandler {
	return &barcodeHandler{barcodeService: barcodeService}
}

func (h *barcodeHandler) LookupBarcode(c *fiber.Ctx) error {
	res, err := h.barcodeService.LookupBarcode(c.Context(), c.Params("barcode"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedLookupBarcode, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLookupBarcode)
}
