package model

import "time"

type MaintenanceTask struct {
	ID            string     `json:"id"`
	AppointmentID string     `json:"appointment_id"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	Technician    string     `json:"technician,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

func (m MaintenanceTask) SearchFields() []string {
	return []string{m.ID, m.AppointmentID, m.Name, m.Technician}
}
