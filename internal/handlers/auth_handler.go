package handlers

import (
	"net/http"

	"rooya_backend/internal/config"
	"rooya_backend/internal/dto"
	"rooya_backend/internal/middleware"
	"rooya_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	me := rg.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("", h.Me)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	setSessionCookie(c, response.AccessToken)
	c.JSON(http.StatusOK, response)
}

// setSessionCookie mirrors the bearer token into a cookie for browser
// clients; AuthMiddleware accepts either.
func setSessionCookie(c *gin.Context, token string) {
	cfg := config.GetConfig()
	secure := cfg.Server.Env == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, cfg.JWT.TTLHours*3600, "/", "", secure, true)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, _, ok := h.GetActor(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, profile, err := h.authService.Me(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "profile": profile})
}
