package orders

// Draft is an unvalidated order shape: the output of the free-text parser
// and the input of create/update. A Draft carries no identity and no
// derived totals of its own; NewOrder and ApplyDraft turn it into a
// validated Order. Keeping the type distinct means unreviewed parser
// output can never be mistaken for a trusted record.
type Draft struct {
	CustomerName string          `json:"customerName"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Notes        string          `json:"notes"`
	Items        []OrderItem     `json:"items"`
	Taxes        float64         `json:"taxes"`
	Discount     float64         `json:"discount"`
	Status       *OrderStatus    `json:"status,omitempty"`
	Timeline     []TimelineEntry `json:"timeline,omitempty"`
}

// DraftFromOrder rebuilds an editable draft from a stored order, carrying
// status and timeline through the edit path unchanged.
func DraftFromOrder(o *Order) Draft {
	status := o.Status
	return Draft{
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Address:      o.Address,
		Notes:        o.Notes,
		Items:        append([]OrderItem{}, o.Items...),
		Taxes:        o.Taxes,
		Discount:     o.Discount,
		Status:       &status,
		Timeline:     append([]TimelineEntry{}, o.Timeline...),
	}
}
