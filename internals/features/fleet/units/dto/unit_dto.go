package dto

type CreateUnitRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Type        string  `json:"type" validate:"required,min=2,max=50"`
	NumberPlate *string `json:"number_plate" validate:"omitempty,max=30"`
}

type UpdateUnitRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Type        *string `json:"type" validate:"omitempty,min=2,max=50"`
	NumberPlate *string `json:"number_plate" validate:"omitempty,max=30"`
}
