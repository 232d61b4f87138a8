package dto

type SendMessageRequest struct {
	Body string `json:"body" binding:"required" validate:"required,min=1,max=10000"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required" validate:"required,min=1,max=5000"`
}
