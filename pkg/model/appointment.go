package model

import (
	"time"
)

// Appointment is the dashboard's view of a workshop booking. The workshop API
// owns the record and every lifecycle transition; this shape only mirrors what
// the tables and detail pages render.
type Appointment struct {
	ID          string         `json:"id"`
	Customer    CustomerRef    `json:"customer"`
	Vehicle     VehicleRef     `json:"vehicle"`
	ScheduledAt time.Time      `json:"scheduled_at"`
	Status      string         `json:"status"`
	Technician  *TechnicianRef `json:"technician,omitempty"`
	Services    []ServiceItem  `json:"services,omitempty"`
	Invoice     *Invoice       `json:"invoice,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type CustomerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type VehicleRef struct {
	VIN   string `json:"vin"`
	Plate string `json:"plate"`
	Model string `json:"model"`
}

type TechnicianRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ServiceItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchFields lists the string fields the appointment tables match free-text
// search against.
func (a Appointment) SearchFields() []string {
	fields := []string{
		a.ID,
		a.ScheduledAt.Format("2006-01-02"),
		a.Vehicle.Plate,
		a.Vehicle.Model,
		a.Customer.Name,
	}
	if a.Technician != nil {
		fields = append(fields, a.Technician.Name)
	}
	return fields
}
