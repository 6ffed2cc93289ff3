package service

import (
	"voltworks/internal/listview"
	"voltworks/internal/status"
	"voltworks/pkg/model"
)

// AppointmentView is an appointment decorated with the display fields the
// tables render: the normalized status key for filtering, the human label and
// the badge variant.
type AppointmentView struct {
	model.Appointment
	StatusKey   string       `json:"status_key"`
	StatusLabel string       `json:"status_label"`
	StatusBadge status.Badge `json:"status_badge"`
}

func newAppointmentView(a model.Appointment) AppointmentView {
	return AppointmentView{
		Appointment: a,
		StatusKey:   status.Key(a.Status),
		StatusLabel: status.Label(a.Status),
		StatusBadge: status.BadgeFor(a.Status),
	}
}

// AppointmentExtractors are the categorical filter columns of the appointment
// tables.
func AppointmentExtractors() map[string]listview.Extractor[AppointmentView] {
	return map[string]listview.Extractor[AppointmentView]{
		"status": func(v AppointmentView) string { return v.StatusKey },
	}
}
