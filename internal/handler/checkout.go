package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"learntechnotes-backend/internal/dto"
	"learntechnotes-backend/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}

	order, err := h.checkoutService.CreateOrder(ctx, req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating order")
	}

	return c.JSON(http.StatusOK, order)
}

func (h *CheckoutHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" ||
		req.RazorpaySignature == "" || req.CourseName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing payment fields")
	}

	// a failed verification is a success:false payload with HTTP 200, which
	// is what the storefront expects
	result, err := h.checkoutService.VerifyPayment(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) Download(c echo.Context) error {
	ctx := c.Request().Context()

	tokenValue := c.Param("token")

	downloadURL, err := h.checkoutService.ResolveDownload(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrExpiredLink) {
			return c.String(http.StatusForbidden, "Invalid or expired download link")
		}
		if errors.Is(err, service.ErrUnknownCourseMapping) {
			return c.String(http.StatusBadRequest, "Invalid course mapping")
		}
		return err
	}

	return c.Redirect(http.StatusFound, downloadURL)
}
