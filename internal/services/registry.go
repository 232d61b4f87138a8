package services

import (
	"rooya_backend/internal/email"
	"rooya_backend/internal/storage"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService    AuthService
	UserService    UserService
	QuotaService   QuotaService
	DreamService   DreamService
	RequestService RequestService
	MessageService MessageService
	CommentService CommentService
	PlanService    PlanService
	PaymentService PaymentService
	AdminService   AdminService
	EmailService   email.Provider
	Storage        storage.Storage
}
