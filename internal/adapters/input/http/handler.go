package http

import (
	"errors"

	"storefront-bot/internal/domain"
	"storefront-bot/internal/ports/input"
	"storefront-bot/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for the admin HTTP API
type HTTPHandler struct {
	srv       input.StorefrontService
	validator validator.Validator
}

// New func - Creates new HTTP handler
func New(srv input.StorefrontService) *HTTPHandler {
	return &HTTPHandler{
		srv:       srv,
		validator: validator.New(),
	}
}

// HealthCheck func
// @Summary Health check
// @Description Reports whether the conversation state store is reachable
// @Tags Health
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 503 {object} ResponseBody
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if err := hdl.srv.HealthCheck(c.UserContext()); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ResponseBody{Status: ServiceUnavailable})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// GetCart godoc
// @Summary Get cart
// @Description Current cart of a chat user as the commerce backend reports it
// @Tags Admin
// @Produce json
// @param user_id path string true "chat user id"
// @Success 200 {object} ResponseBody{data=CartResponse}
// @Failure 400 {object} ResponseBody
// @Failure 502 {object} ResponseBody
// @Router /v1/api/cart/{user_id} [get]
func (hdl *HTTPHandler) GetCart(c *fiber.Ctx) error {
	userID, err := hdl.userID(c)
	if err != nil {
		return badRequest(c, err)
	}

	cart, err := hdl.srv.CartStatus(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: NewCartResponse(cart)})
}

// GetConversation godoc
// @Summary Get conversation state
// @Description Stored conversation state of a chat user
// @Tags Admin
// @Produce json
// @param user_id path string true "chat user id"
// @Success 200 {object} ResponseBody{data=ConversationResponse}
// @Failure 400 {object} ResponseBody
// @Failure 500 {object} ResponseBody
// @Router /v1/api/conversation/{user_id} [get]
func (hdl *HTTPHandler) GetConversation(c *fiber.Ctx) error {
	userID, err := hdl.userID(c)
	if err != nil {
		return badRequest(c, err)
	}

	status, err := hdl.srv.ConversationStatus(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ConversationResponse{
		UserID: status.UserID,
		State:  string(status.State),
	}})
}

// ResetConversation godoc
// @Summary Reset conversation
// @Description Discards any in-progress checkout of a chat user
// @Tags Admin
// @Produce json
// @param user_id path string true "chat user id"
// @Success 200 {object} ResponseBody
// @Failure 400 {object} ResponseBody
// @Failure 500 {object} ResponseBody
// @Router /v1/api/conversation/{user_id} [delete]
func (hdl *HTTPHandler) ResetConversation(c *fiber.Ctx) error {
	userID, err := hdl.userID(c)
	if err != nil {
		return badRequest(c, err)
	}

	if err := hdl.srv.ResetConversation(c.UserContext(), userID); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ConversationResponse{
		UserID: userID,
		State:  string(domain.ConversationStateBrowsing),
	}})
}

func (hdl *HTTPHandler) userID(c *fiber.Ctx) (string, error) {
	var params UserParams
	if err := c.ParamsParser(&params); err != nil {
		return "", err
	}
	if err := hdl.validator.ValidateStruct(params); err != nil {
		return "", err
	}
	return params.UserID, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	msg := ResponseBody{Status: BadRequest}
	msg.Status.Message = []string{err.Error()}
	return c.Status(fiber.StatusBadRequest).JSON(msg)
}

// serviceError maps commerce failures to 502 and everything else to 500
func serviceError(c *fiber.Ctx, err error) error {
	logrus.Errorln(err)

	status := InternalServerError
	if errors.Is(err, domain.ErrBackend) || errors.Is(err, domain.ErrUnauthorized) {
		status = BadGateway
	}
	msg := ResponseBody{Status: status}
	msg.Status.Message = []string{err.Error()}
	return c.Status(status.Code).JSON(msg)
}
