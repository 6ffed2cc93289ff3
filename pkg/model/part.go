package model

type Part struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PartNumber      string `json:"part_number"`
	Category        string `json:"category"`
	Brand           string `json:"brand"`
	CompatibleModel string `json:"compatible_model"`
	InitialQuantity int    `json:"initial_quantity"`
	UsedQuantity    int    `json:"used_quantity"`
	Status          string `json:"status"` // "active" or "inactive"
}

// CurrentStock is derived for display only. Authoritative stock mutation
// happens in the workshop API when a maintenance task consumes a part.
func (p Part) CurrentStock() int {
	return p.InitialQuantity - p.UsedQuantity
}

func (p Part) SearchFields() []string {
	return []string{p.ID, p.Name, p.PartNumber, p.Brand, p.CompatibleModel}
}
