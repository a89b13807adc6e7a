package booking

import "time"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusApproved, StatusCancelled}

// ParseStatus accepts an exact status name.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Booking is a customer's appointment request. Service holds the service
// name as it was at submission time, not a reference into the catalog.
type Booking struct {
	ID           int64     `db:"id" json:"id"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	Contact      string    `db:"contact" json:"contact"`
	Service      string    `db:"service" json:"service"`
	Date         string    `db:"date" json:"date"` // YYYY-MM-DD
	Time         string    `db:"time" json:"time"` // HH:MM
	Status       Status    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
