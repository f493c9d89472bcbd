package request

// CreateUserRequest represents a dashboard account creation request
type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Role     string  `json:"role" binding:"required,oneof=admin receptionist storekeeper"`
	Password string  `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest is a partial account update
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin receptionist storekeeper"`
	IsActive *bool   `json:"isActive"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}
