package model

import "time"

// BookingRequest is the customer booking form. It is validated in full before
// anything is sent to the workshop API; an invalid form never reaches the
// network.
type BookingRequest struct {
	VehicleVIN   string    `json:"vehicle_vin" validate:"required,vin"`
	VehiclePlate string    `json:"vehicle_plate" validate:"required,min=5,max=12"`
	VehicleModel string    `json:"vehicle_model" validate:"required,min=2,max=60"`
	ServiceIDs   []string  `json:"service_ids" validate:"required,min=1,max=10,dive,required"`
	ScheduledAt  time.Time `json:"scheduled_at" validate:"required"`
	ContactName  string    `json:"contact_name" validate:"required,min=2,max=100"`
	ContactPhone string    `json:"contact_phone" validate:"required,e164"`
	Notes        string    `json:"notes" validate:"omitempty,max=500"`
}

// EnumValue is one entry of a backend-owned enumeration, as served by the
// workshop API's enum endpoint.
type EnumValue struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}
