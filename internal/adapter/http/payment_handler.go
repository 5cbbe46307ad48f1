package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	ucPayment "loanlink-backend/internal/usecase/payment"
)

type PaymentHandler struct{ uc *ucPayment.Usecase }

func NewPaymentHandler(uc *ucPayment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type checkoutReq struct {
	ApplicationID string `json:"application_id" validate:"required,hex32"`
}

type paymentSuccessReq struct {
	SessionID string `json:"session_id" validate:"required,max=255"`
}

func (h *PaymentHandler) CreateCheckoutSession(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.uc.CreateCheckout(c.Request().Context(), caller, req.ApplicationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) PaymentSuccess(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var req paymentSuccessReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.uc.Confirm(c.Request().Context(), caller, req.SessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
