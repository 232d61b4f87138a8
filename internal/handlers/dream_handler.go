package handlers

import (
	"net/http"

	"rooya_backend/internal/dto"
	"rooya_backend/internal/middleware"
	"rooya_backend/internal/services"
	"rooya_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type DreamHandler struct {
	*BaseHandler
	dreamService   services.DreamService
	messageService services.MessageService
	commentService services.CommentService
}

func NewDreamHandler(
	base *BaseHandler,
	dreamService services.DreamService,
	messageService services.MessageService,
	commentService services.CommentService,
) *DreamHandler {
	return &DreamHandler{
		BaseHandler:    base,
		dreamService:   dreamService,
		messageService: messageService,
		commentService: commentService,
	}
}

func (h *DreamHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dreams := rg.Group("/dreams")
	dreams.Use(middleware.AuthMiddleware())
	{
		dreams.POST("", h.Create)
		dreams.GET("", h.List)
		dreams.GET("/:id", h.Get)
		dreams.PATCH("/:id", h.Update)
		dreams.DELETE("/:id", h.Delete)
		dreams.POST("/:id/audio", h.UploadAudio)

		dreams.GET("/:id/messages", h.ListMessages)
		dreams.POST("/:id/messages", h.SendMessage)

		dreams.GET("/:id/comments", h.ListComments)
		dreams.POST("/:id/comments", h.CreateComment)
	}

	messages := rg.Group("/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.DELETE("/:id", h.DeleteMessage)
	}
}

func (h *DreamHandler) Create(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateDreamRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	dream, err := h.dreamService.Create(db, actorID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dream)
}

func (h *DreamHandler) List(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var query dto.DreamListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	db := h.GetDB(c)

	dreams, total, err := h.dreamService.List(db, actorID, role, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dreams, "total": total})
}

func (h *DreamHandler) Get(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	dream, err := h.dreamService.Get(db, actorID, role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dream)
}

func (h *DreamHandler) Update(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateDreamRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	dream, err := h.dreamService.Update(db, actorID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dream)
}

func (h *DreamHandler) Delete(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.dreamService.Delete(db, actorID, role, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *DreamHandler) UploadAudio(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing audio file"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer f.Close()

	db := h.GetDB(c)

	dream, err := h.dreamService.AttachAudio(db, actorID, role, c.Param("id"), fileHeader.Filename, f)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dream)
}

func (h *DreamHandler) ListMessages(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	messages, err := h.messageService.ListDreamMessages(db, actorID, role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": messages})
}

func (h *DreamHandler) SendMessage(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	msg, err := h.messageService.SendDreamMessage(db, actorID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

func (h *DreamHandler) DeleteMessage(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.messageService.DeleteDreamMessage(db, actorID, role, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *DreamHandler) ListComments(c *gin.Context) {
	db := h.GetDB(c)

	comments, err := h.commentService.List(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": comments})
}

func (h *DreamHandler) CreateComment(c *gin.Context) {
	actorID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	comment, err := h.commentService.Create(db, actorID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
