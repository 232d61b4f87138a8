package dto

type CreateCheckoutRequest struct {
	PlanID string `json:"planId" binding:"required" validate:"required,uuid"`
}

type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}
