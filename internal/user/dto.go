// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateUserRequest struct {
	FirstName *string  `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string  `json:"last_name,omitempty"  validate:"omitempty,min=1,max=100"`
	Bio       *string  `json:"bio,omitempty"        validate:"omitempty,max=1000"`
	Profile   *Profile `json:"profile,omitempty"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Username           string    `json:"username"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	DisplayName        string    `json:"display_name"`
	Bio                string    `json:"bio,omitempty"`
	Role               string    `json:"role"`
	Profile            Profile   `json:"profile"`
	SubscriptionStatus string    `json:"subscription_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ListUsersParams struct {
	Page               int    `json:"page"`
	PageSize           int    `json:"page_size"`
	Search             string `json:"search"`
	SubscriptionStatus string `json:"subscription_status"`
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Username:           u.Username,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		DisplayName:        u.DisplayName,
		Bio:                u.Bio,
		Role:               u.Role,
		Profile:            u.Profile,
		SubscriptionStatus: u.SubscriptionStatus,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
