package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tattoo-studio/pkg/logging"
	"tattoo-studio/pkg/metrics"
)

// Booking form limits, counted in characters.
const (
	MaxNameLength    = 80
	MaxPhoneLength   = 20
	MaxMessageLength = 500
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrNotificationFailed is returned when the email provider rejects a valid booking.
var ErrNotificationFailed = errors.New("booking notification failed")

// BookingRequest is a submitted booking form.
type BookingRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// Normalized returns a copy with surrounding whitespace removed.
func (r BookingRequest) Normalized() BookingRequest {
	return BookingRequest{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Phone:   strings.TrimSpace(r.Phone),
		Date:    strings.TrimSpace(r.Date),
		Message: strings.TrimSpace(r.Message),
	}
}

// Params returns the flat template parameters sent with the notification.
func (r BookingRequest) Params() map[string]string {
	return map[string]string{
		"name":    r.Name,
		"email":   r.Email,
		"phone":   r.Phone,
		"date":    r.Date,
		"message": r.Message,
	}
}

// ValidationError lists the fields that failed validation, keyed by form field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid booking: " + strings.Join(names, ", ")
}

// Validate checks r against the booking form rules. It returns nil when the
// request may be sent.
func (r BookingRequest) Validate() *ValidationError {
	fields := make(map[string]string)

	switch {
	case r.Name == "":
		fields["name"] = "Name is required"
	case utf8.RuneCountInString(r.Name) > MaxNameLength:
		fields["name"] = fmt.Sprintf("Name must be %d characters or fewer", MaxNameLength)
	}

	switch {
	case r.Email == "":
		fields["email"] = "Email is required"
	case !emailPattern.MatchString(r.Email):
		fields["email"] = "Please enter a valid email address"
	}

	if utf8.RuneCountInString(r.Phone) > MaxPhoneLength {
		fields["phone"] = fmt.Sprintf("Phone must be %d characters or fewer", MaxPhoneLength)
	}

	if r.Date != "" {
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			fields["date"] = "Please pick a valid date"
		}
	}

	if utf8.RuneCountInString(r.Message) > MaxMessageLength {
		fields["message"] = fmt.Sprintf("Message must be %d characters or fewer", MaxMessageLength)
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// MessageCounter renders the live character counter, e.g. "120/500".
func MessageCounter(message string) string {
	return fmt.Sprintf("%d/%d", utf8.RuneCountInString(message), MaxMessageLength)
}

// Notifier delivers one templated booking email.
type Notifier interface {
	Send(ctx context.Context, params map[string]string) error
}

// BookingResult describes an accepted booking.
type BookingResult struct {
	Reference string
	Request   BookingRequest
}

// BookingService validates booking requests and forwards them to the notifier.
type BookingService struct {
	notifier Notifier
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewBookingService creates a booking service.
func NewBookingService(n Notifier, logger *zap.Logger, m *metrics.Metrics) *BookingService {
	return &BookingService{
		notifier: n,
		logger:   logging.OrNop(logger),
		metrics:  m,
	}
}

// Submit validates req and sends exactly one notification when it is valid.
// Invalid requests return a *ValidationError without contacting the provider.
func (b *BookingService) Submit(ctx context.Context, req BookingRequest) (BookingResult, error) {
	req = req.Normalized()
	if verr := req.Validate(); verr != nil {
		b.metrics.Booking(metrics.BookingInvalid)
		return BookingResult{}, verr
	}

	ref := uuid.NewString()
	if err := b.notifier.Send(ctx, req.Params()); err != nil {
		b.metrics.Booking(metrics.BookingFailed)
		b.logger.Error("Failed to send booking",
			zap.String("reference", ref),
			zap.Error(err),
		)
		return BookingResult{}, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	b.metrics.Booking(metrics.BookingSent)
	b.logger.Info("Booking sent",
		zap.String("reference", ref),
		zap.Bool("has_date", req.Date != ""),
	)
	return BookingResult{Reference: ref, Request: req}, nil
}
