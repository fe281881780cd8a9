package dto

import (
	"time"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
)

// CreateUserRequest defines the payload for provisioning a user.
// Role must be one of the configured hierarchy roles; the "hierarchyrole"
// validator is registered at router setup.
type CreateUserRequest struct {
	Username  string  `json:"username" binding:"required"`
	Password  string  `json:"password" binding:"required,min=8"`
	Name      string  `json:"name" binding:"required"`
	Role      string  `json:"role" binding:"required,hierarchyrole"`
	Line      string  `json:"line"`
	Area      string  `json:"area"`
	District  string  `json:"district"`
	Region    string  `json:"region"`
	ManagerID *string `json:"managerID"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Role      *string `json:"role" binding:"omitempty,hierarchyrole"`
	Line      *string `json:"line"`
	Area      *string `json:"area"`
	District  *string `json:"district"`
	Region    *string `json:"region"`
	ManagerID *string `json:"managerID"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	UserID    string     `json:"userID"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Line      string     `json:"line,omitempty"`
	Area      string     `json:"area,omitempty"`
	District  string     `json:"district,omitempty"`
	Region    string     `json:"region,omitempty"`
	ManagerID *string    `json:"managerID,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	Inactive  bool       `json:"inactive,omitempty"`
	DeletedAt *time.Time `json:"deactivatedAt,omitempty"`
}

// ToUserResponse converts a domain.User to its public representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      string(u.Role),
		Line:      u.Line,
		Area:      u.Area,
		District:  u.District,
		Region:    u.Region,
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt,
		Inactive:  !u.IsActive(),
		DeletedAt: u.DeactivatedAt,
	}
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}
