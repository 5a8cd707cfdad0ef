package dto

type CreateUserRequest struct {
	FirstName   string  `json:"first_name" validate:"required,min=2,max=100"`
	LastName    string  `json:"last_name" validate:"required,min=2,max=100"`
	Username    string  `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password    string  `json:"password" validate:"required,min=6"`
	Role        string  `json:"role" validate:"required,oneof=STAFF ADMIN"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=30"`
}

type UpdateUserRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,min=2,max=100"`
	Username    *string `json:"username" validate:"omitempty,min=3,max=50,alphanum"`
	Password    *string `json:"password" validate:"omitempty,min=6"`
	Role        *string `json:"role" validate:"omitempty,oneof=STAFF ADMIN"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=30"`
}

// UpdateProfileRequest dipakai user untuk datanya sendiri. Username hanya
// boleh diganti admin lewat endpoint admin; di sini tidak ada field-nya.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,min=2,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=30"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}
