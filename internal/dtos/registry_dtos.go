package dtos

import "github.com/google/uuid"

type CreateLandlordRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
}

type CreateTenantRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
}

type CreatePropertyRequest struct {
	LandlordID uuid.UUID `json:"landlord_id" validate:"required"`
	Title      string    `json:"title" validate:"required"`
	Address    string    `json:"address" validate:"required"`
	City       string    `json:"city" validate:"required"`
	Mode       string    `json:"mode" validate:"omitempty,oneof=whole multi_unit"`
}

type CreateUnitRequest struct {
	Name        string  `json:"name" validate:"required"`
	UnitNumber  string  `json:"unit_number" validate:"required"`
	MonthlyRent float64 `json:"monthly_rent" validate:"required,gt=0"`
}

type CreateRoomRequest struct {
	UnitID      *uuid.UUID `json:"unit_id,omitempty"`
	Name        string     `json:"name" validate:"required"`
	RoomNumber  string     `json:"room_number" validate:"required"`
	SurfaceSqm  float64    `json:"surface_sqm" validate:"gte=0"`
	MonthlyRent float64    `json:"monthly_rent" validate:"gte=0"`
}

type SetUnitStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_renovation out_of_service"`
}
