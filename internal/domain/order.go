package domain

import "time"

// CartItem is one line of the checkout-time cart snapshot. It is produced by
// the cart collaborator and read-only to this module.
type CartItem struct {
	Name     string  `json:"name"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderDraft is the client-assembled, not-yet-persisted representation of a
// checkout attempt. Immutable once built; only serialized downstream.
type OrderDraft struct {
	FullName string     `json:"fullName"`
	Phone    string     `json:"phone"`
	City     string     `json:"city"`
	Notes    string     `json:"notes,omitempty"`
	Items    []CartItem `json:"items"`
	Total    float64    `json:"total"`
	Date     string     `json:"date"`
}

// NewOrderDraft snapshots the form fields and cart into a draft, stamping the
// submission time as an ISO-8601 string.
func NewOrderDraft(fullName, phone, city, notes string, items []CartItem, total float64, at time.Time) OrderDraft {
	snapshot := make([]CartItem, len(items))
	copy(snapshot, items)
	return OrderDraft{
		FullName: fullName,
		Phone:    phone,
		City:     city,
		Notes:    notes,
		Items:    snapshot,
		Total:    total,
		Date:     at.UTC().Format(time.RFC3339),
	}
}

// Order statuses assigned on first server-side acceptance.
const StatusPending = "pending"

// DocumentOrdersKey is the field of the shared orders document holding the
// persisted order list, newest first.
const DocumentOrdersKey = "orders"
