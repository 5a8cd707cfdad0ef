package dto

type CreateCheckItemRequest struct {
	Code      string `json:"code" validate:"required,min=1,max=20,alphanum"`
	Label     string `json:"label" validate:"required,min=2,max=255"`
	SortOrder *int   `json:"sort_order" validate:"omitempty,gte=1"`
	IsActive  *bool  `json:"is_active"`
}

type MoveCheckItemRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type UpdateCheckItemRequest struct {
	Code      *string `json:"code" validate:"omitempty,min=1,max=20,alphanum"`
	Label     *string `json:"label" validate:"omitempty,min=2,max=255"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=1"`
	IsActive  *bool   `json:"is_active"`
}
