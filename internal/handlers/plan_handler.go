package handlers

import (
	"net/http"

	"rooya_backend/internal/dto"
	"rooya_backend/internal/middleware"
	"rooya_backend/internal/models"
	"rooya_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	*BaseHandler
	planService services.PlanService
}

func NewPlanHandler(base *BaseHandler, planService services.PlanService) *PlanHandler {
	return &PlanHandler{
		BaseHandler: base,
		planService: planService,
	}
}

func (h *PlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/plans")
	{
		plans.GET("", h.List)
		plans.GET("/:id", h.Get)
		plans.POST("/subscribe", middleware.AuthMiddleware(), h.SubscribeSelf)
	}

	subscription := rg.Group("/subscription")
	subscription.Use(middleware.AuthMiddleware())
	{
		subscription.GET("/status", h.Status)
	}

	admin := rg.Group("/admin/plans")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}

	adminSubs := rg.Group("/admin/users/:id/subscribe")
	adminSubs.Use(middleware.AuthMiddleware())
	adminSubs.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
	{
		adminSubs.POST("", h.Subscribe)
	}
}

func (h *PlanHandler) List(c *gin.Context) {
	db := h.GetDB(c)

	plans, err := h.planService.ListActive(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": plans})
}

func (h *PlanHandler) Get(c *gin.Context) {
	db := h.GetDB(c)

	plan, err := h.planService.Get(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) Status(c *gin.Context) {
	userID, _, ok := h.GetActor(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	status, err := h.planService.Status(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	plan, err := h.planService.Create(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) Update(c *gin.Context) {
	var req dto.UpdatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	plan, err := h.planService.Update(db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) Delete(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.planService.Delete(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SubscribeSelf activates a plan for the caller synchronously, without a
// payment gateway round trip.
func (h *PlanHandler) SubscribeSelf(c *gin.Context) {
	userID, _, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.SubscribeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	sub, err := h.planService.Subscribe(db, userID, req.PlanID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// Subscribe binds a user to a plan without a payment. Admin tooling and
// support workflows use this path.
func (h *PlanHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	sub, err := h.planService.Subscribe(db, c.Param("id"), req.PlanID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}
