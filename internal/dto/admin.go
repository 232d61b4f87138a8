package dto

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required" validate:"required,is-profile-role"`
}

type PlatformStats struct {
	TotalUsers       int64            `json:"total_users"`
	UsersByRole      map[string]int64 `json:"users_by_role"`
	DreamsByStatus   map[string]int64 `json:"dreams_by_status"`
	PaymentsByStatus map[string]int64 `json:"payments_by_status"`
	Revenue30Days    float64          `json:"revenue_30_days"`
}
