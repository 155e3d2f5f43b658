package handlers

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/internal/api/presenters"
	"FlashFoodDelivery/internal/utils/mailing"
	"FlashFoodDelivery/pkg/order"
	"FlashFoodDelivery/pkg/user"
	"context"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	OrderHandler interface {
		CreateOrder(c *fiber.Ctx) error
		Checkout(c *fiber.Ctx) error
		GetOrders(c *fiber.Ctx) error
		GetOrder(c *fiber.Ctx) error
		GetStatuses(c *fiber.Ctx) error
		AppendStatus(c *fiber.Ctx) error
		AssignShipper(c *fiber.Ctx) error
		MarkShipped(c *fiber.Ctx) error
		MarkDelivered(c *fiber.Ctx) error
		CancelOrder(c *fiber.Ctx) error
		RecordFeedback(c *fiber.Ctx) error
		GetFeedbacks(c *fiber.Ctx) error
		RecordTransaction(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		userService  user.UserService
		mailer       mailing.Mailer
		appURL       string
		validator    *validator.Validate
	}
)

func NewOrderHandler(
	orderService order.OrderService,
	userService user.UserService,
	mailer mailing.Mailer,
	appURL string,
	validator *validator.Validate,
) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		userService:  userService,
		mailer:       mailer,
		appURL:       appURL,
		validator:    validator,
	}
}

func (h *orderHandler) CreateOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	res, err := h.orderService.CreateOrder(c.Context(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedCreateOrder, err)
	}

	h.notify(res)
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateOrder)
}

func (h *orderHandler) Checkout(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CheckoutRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, err)
	}

	res, err := h.orderService.Checkout(c.Context(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedCheckout, err)
	}

	h.notify(res)
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCheckout)
}

func (h *orderHandler) GetOrders(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.orderService.GetUserOrders(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) GetOrder(c *fiber.Ctx) error {
	res, err := h.authorizedOrder(c)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) GetStatuses(c *fiber.Ctx) error {
	if _, err := h.authorizedOrder(c); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedGetOrderStatuses, err)
	}

	res, err := h.orderService.StatusHistory(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedGetOrderStatuses, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrderStatuses)
}

func (h *orderHandler) AppendStatus(c *fiber.Ctx) error {
	req := new(domain.AppendStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAppendOrderStatus, err)
	}

	res, err := h.orderService.AppendStatus(c.Context(), c.Params("id"), req.Status, req.ShipperID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedAppendOrderStatus, err)
	}

	h.notifyStatus(res)
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAppendOrderStatus)
}

func (h *orderHandler) AssignShipper(c *fiber.Ctx) error {
	req := new(domain.AssignShipperRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAssignShipper, err)
	}

	res, err := h.orderService.AssignShipper(c.Context(), c.Params("id"), req.ShipperID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedAssignShipper, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAssignShipper)
}

func (h *orderHandler) MarkShipped(c *fiber.Ctx) error {
	res, err := h.orderService.MarkShipped(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedAppendOrderStatus, err)
	}

	h.notifyStatus(res)
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAppendOrderStatus)
}

func (h *orderHandler) MarkDelivered(c *fiber.Ctx) error {
	res, err := h.orderService.MarkDelivered(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedAppendOrderStatus, err)
	}

	h.notifyStatus(res)
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAppendOrderStatus)
}

// CancelOrder is open to the order's member as well as staff.
func (h *orderHandler) CancelOrder(c *fiber.Ctx) error {
	if _, err := h.authorizedOrder(c); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedAppendOrderStatus, err)
	}

	res, err := h.orderService.CancelOrder(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedAppendOrderStatus, err)
	}

	h.notifyStatus(res)
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAppendOrderStatus)
}

func (h *orderHandler) RecordFeedback(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.FeedbackRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecordFeedback, err)
	}

	res, err := h.orderService.RecordFeedback(c.Context(), c.Params("id"), userID, req.Comment)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedRecordFeedback, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRecordFeedback)
}

func (h *orderHandler) GetFeedbacks(c *fiber.Ctx) error {
	if _, err := h.authorizedOrder(c); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedGetOrders, err)
	}

	res, err := h.orderService.GetFeedbacks(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) RecordTransaction(c *fiber.Ctx) error {
	res, err := h.orderService.RecordTransaction(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusCode(err), domain.MessageFailedRecordTransaction, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRecordTransaction)
}

// authorizedOrder loads the order in :id. Members only see their own orders;
// shippers and admins see all of them.
func (h *orderHandler) authorizedOrder(c *fiber.Ctx) (domain.OrderResponse, error) {
	res, err := h.orderService.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return domain.OrderResponse{}, err
	}

	role, _ := c.Locals("role").(string)
	if role == domain.RoleAdmin || role == domain.RoleShipper {
		return res, nil
	}

	userID, _ := c.Locals("user_id").(string)
	if res.MemberID == nil || *res.MemberID != userID {
		return domain.OrderResponse{}, domain.ErrNotOrderMember
	}
	return res, nil
}

func (h *orderHandler) notifyStatus(entry domain.StatusEntryResponse) {
	if h.mailer == nil {
		return
	}
	go func() {
		res, err := h.orderService.GetOrder(context.Background(), entry.OrderID)
		if err != nil {
			log.Errorf("load order %s for mail: %v", entry.OrderID, err)
			return
		}
		h.sendOrderMail(res)
	}()
}

func (h *orderHandler) notify(res domain.OrderResponse) {
	if h.mailer == nil {
		return
	}
	go h.sendOrderMail(res)
}

func (h *orderHandler) sendOrderMail(res domain.OrderResponse) {
	if res.MemberID == nil {
		return
	}

	member, err := h.userService.GetUserByID(context.Background(), *res.MemberID)
	if err != nil {
		log.Errorf("load member of order %s for mail: %v", res.ID, err)
		return
	}

	subject, body, err := mailing.RenderOrderMail(mailing.OrderMail{
		CustomerName: member.FullName,
		OrderID:      res.ID,
		Status:       res.Status,
		Total:        res.TotalPrice.StringFixed(2),
		AppURL:       h.appURL,
	})
	if err != nil {
		log.Errorf("render mail for order %s: %v", res.ID, err)
		return
	}

	if err := h.mailer.SendMail(member.Email, subject, body); err != nil {
		log.Errorf("send mail for order %s: %v", res.ID, err)
	}
}
