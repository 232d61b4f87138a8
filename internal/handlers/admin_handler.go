package handlers

import (
	"net/http"

	"rooya_backend/internal/dto"
	"rooya_backend/internal/middleware"
	"rooya_backend/internal/models"
	"rooya_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
	{
		admin.GET("/stats", h.Stats)
		admin.GET("/users", h.ListUsers)
		admin.PATCH("/users/:id/role", h.UpdateRole)
		admin.DELETE("/users/:id", h.DeleteUser)
	}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	db := h.GetDB(c)

	stats, err := h.adminService.Stats(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	users, total, err := h.adminService.ListUsers(db, pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": users, "total": total})
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	_, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.adminService.UpdateRole(db, role, c.Param("id"), models.ProfileRole(req.Role)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	_, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.adminService.DeleteUser(db, role, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
