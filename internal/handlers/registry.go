package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	DreamHandler   *DreamHandler
	RequestHandler *RequestHandler
	PlanHandler    *PlanHandler
	PaymentHandler *PaymentHandler
	AdminHandler   *AdminHandler
	FileHandler    *FileHandler
}
