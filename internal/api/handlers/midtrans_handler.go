package handlers

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/internal/api/presenters"
	"FlashFoodDelivery/pkg/midtrans"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	MidtransHandler interface {
		CreatePayment(c *fiber.Ctx) error
		MidtransWebhookHandler(c *fiber.Ctx) error
	}

	midtransHandler struct {
		midtransService midtrans.MidtransService
		validator       *validator.Validate
	}
)

func NewMidtransHandler(midtransService midtrans.MidtransService, validator *validator.Validate) MidtransHandler {
	return &midtransHandler{
		midtransService: midtransService,
		validator:       validator,
	}
}

func (h *midtransHandler) CreatePayment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.midtransService.CreatePaymentLink(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedCreatePayment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCreatePayment)
}

func (h *midtransHandler) MidtransWebhookHandler(c *fiber.Ctx) error {
	req := new(domain.MidtransNotification)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedNotification, err)
	}

	res, err := h.midtransService.HandleNotification(c.Context(), *req)
	if err != nil {
		log.Warnf("midtrans notification for %s rejected: %v", req.OrderID, err)
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedNotification, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessNotification)
}
