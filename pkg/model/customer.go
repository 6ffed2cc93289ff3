package model

import "time"

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	RoleName  string    `json:"role_name"`
	Status    string    `json:"status"` // "active", "inactive" or "archived"
	CreatedAt time.Time `json:"created_at"`
}

func (c Customer) SearchFields() []string {
	return []string{c.ID, c.Name, c.Email, c.Phone}
}
