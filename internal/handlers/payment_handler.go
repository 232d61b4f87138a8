package handlers

import (
	"io"
	"net/http"

	"rooya_backend/internal/dto"
	"rooya_backend/internal/middleware"
	"rooya_backend/internal/services"
	"rooya_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST("/create-checkout-session", h.CreateCheckout)
		payments.GET("/history", h.History)
	}

	// The webhook authenticates by signature, not by session.
	rg.POST("/payments/webhook", h.Webhook)
}

func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	userID, _, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateCheckoutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	url, sessionID, err := h.paymentService.CreateCheckout(db, userID, req.PlanID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{URL: url, SessionID: sessionID})
}

func (h *PaymentHandler) Webhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid payload"))
		return
	}

	db := h.GetDB(c)

	if err := h.paymentService.HandleWebhook(db, payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *PaymentHandler) History(c *gin.Context) {
	userID, _, ok := h.GetActor(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	payments, err := h.paymentService.History(db, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": payments})
}
