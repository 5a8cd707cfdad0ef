package dto

import "time"

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        UserInfo `json:"user"`
}

type UserInfo struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	UserImage   *string    `json:"user_image,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}
