package handlers

import (
	"net/http"

	"rooya_backend/internal/dto"
	"rooya_backend/internal/middleware"
	"rooya_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	*BaseHandler
	requestService services.RequestService
	messageService services.MessageService
}

func NewRequestHandler(
	base *BaseHandler,
	requestService services.RequestService,
	messageService services.MessageService,
) *RequestHandler {
	return &RequestHandler{
		BaseHandler:    base,
		requestService: requestService,
		messageService: messageService,
	}
}

func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", h.Create)
		requests.GET("", h.List)
		requests.GET("/:id", h.Get)
		requests.PATCH("/:id", h.Update)

		requests.GET("/:id/chat", h.ListChat)
		requests.POST("/:id/chat", h.SendChat)
	}
}

func (h *RequestHandler) Create(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	request, err := h.requestService.Create(db, actorID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *RequestHandler) List(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var query dto.RequestListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	db := h.GetDB(c)

	requests, total, err := h.requestService.List(db, actorID, role, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": requests, "total": total})
}

func (h *RequestHandler) Get(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	request, err := h.requestService.Get(db, actorID, role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *RequestHandler) Update(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateRequestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	request, err := h.requestService.Update(db, actorID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *RequestHandler) ListChat(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	messages, err := h.messageService.ListRequestChat(db, actorID, role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": messages})
}

func (h *RequestHandler) SendChat(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	msg, err := h.messageService.SendRequestChat(db, actorID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}
