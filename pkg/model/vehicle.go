package model

import "time"

type Vehicle struct {
	ID             string       `json:"id"`
	VIN            string       `json:"vin"`
	Plate          string       `json:"plate"`
	Model          string       `json:"model"`
	BatteryPercent int          `json:"battery_percent"`
	MileageKM      int          `json:"mileage_km"`
	Owner          *CustomerRef `json:"owner,omitempty"` // staff view only
	Status         string       `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
}

func (v Vehicle) SearchFields() []string {
	fields := []string{v.ID, v.VIN, v.Plate, v.Model}
	if v.Owner != nil {
		fields = append(fields, v.Owner.Name)
	}
	return fields
}
