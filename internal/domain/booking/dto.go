package booking

import (
	"net/url"
	"strings"
)

// SubmitRequest is a booking form submission. Service is a catalog slug.
type SubmitRequest struct {
	Name    string `form:"name" json:"name" validate:"required,max=120"`
	Contact string `form:"contact" json:"contact" validate:"required,max=120"`
	Service string `form:"service" json:"service" validate:"required"`
	Date    string `form:"date" json:"date" validate:"required,booking_date"`
	Time    string `form:"time" json:"time" validate:"required,booking_time"`
}

// SubmitRequestFromForm reads the booking form fields.
func SubmitRequestFromForm(form url.Values) *SubmitRequest {
	return &SubmitRequest{
		Name:    form.Get("name"),
		Contact: form.Get("contact"),
		Service: form.Get("service"),
		Date:    form.Get("date"),
		Time:    form.Get("time"),
	}
}

func (r *SubmitRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Contact = strings.TrimSpace(r.Contact)
	r.Service = strings.TrimSpace(r.Service)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
}
