package dto

type CreateRequestRequest struct {
	DreamID string   `json:"dreamId" binding:"required" validate:"required,uuid"`
	Budget  *float64 `json:"budget" validate:"omitempty,min=0"`
	Note    string   `json:"note" validate:"omitempty,max=2000"`
}

type UpdateRequestRequest struct {
	Status        *string  `json:"status" validate:"omitempty,is-request-status"`
	InterpreterID *string  `json:"interpreter_id" validate:"omitempty,uuid"`
	Budget        *float64 `json:"budget" validate:"omitempty,min=0"`
	Note          *string  `json:"note" validate:"omitempty,max=2000"`
}

type RequestListQuery struct {
	Status   string `form:"status" validate:"omitempty,is-request-status"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}
