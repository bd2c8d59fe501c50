package views

import (
	"time"

	"tattoo-studio/pkg/services"
)

// Booking alert messages.
const (
	BookingSuccessMessage = "Thank you! Your booking request has been sent. We'll be in touch soon."
	BookingFailureMessage = "Something went wrong sending your request. Please try again."
	BookingLimitedMessage = "Too many requests. Please wait a minute and try again."
)

// BookingForm is the booking form state: the entered values, per-field
// errors, the live message counter and the outcome of the last submit.
type BookingForm struct {
	Values  services.BookingRequest
	Errors  map[string]string
	Counter string
	Limits  BookingLimits

	// Success shows the acknowledgment, which dismisses itself after DismissAfterMs.
	Success        bool
	Reference      string
	DismissAfterMs int64

	// Alert is a blocking error shown above the form.
	Alert string
}

// BookingLimits exposes the field limits to templates.
type BookingLimits struct {
	Name    int
	Phone   int
	Message int
}

func limits() BookingLimits {
	return BookingLimits{
		Name:    services.MaxNameLength,
		Phone:   services.MaxPhoneLength,
		Message: services.MaxMessageLength,
	}
}

// NewBookingForm is an empty form.
func NewBookingForm() BookingForm {
	return BookingForm{
		Errors:  map[string]string{},
		Counter: services.MessageCounter(""),
		Limits:  limits(),
	}
}

// InvalidBookingForm keeps the entered values alongside the field errors.
func InvalidBookingForm(values services.BookingRequest, fieldErrors map[string]string) BookingForm {
	form := NewBookingForm()
	form.Values = values
	form.Counter = services.MessageCounter(values.Message)
	if fieldErrors != nil {
		form.Errors = fieldErrors
	}
	return form
}

// FailedBookingForm keeps the entered values and shows alert.
func FailedBookingForm(values services.BookingRequest, alert string) BookingForm {
	form := InvalidBookingForm(values, nil)
	form.Alert = alert
	return form
}

// SentBookingForm is a cleared form showing the acknowledgment.
func SentBookingForm(reference string, ack time.Duration) BookingForm {
	form := NewBookingForm()
	form.Success = true
	form.Reference = reference
	form.DismissAfterMs = ack.Milliseconds()
	return form
}

// HasError reports whether field failed validation.
func (f BookingForm) HasError(field string) bool {
	_, ok := f.Errors[field]
	return ok
}
