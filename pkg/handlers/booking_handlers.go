package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tattoo-studio/pkg/services"
	"tattoo-studio/pkg/views"
)

const maxBookingBody = 64 << 10

type bookingResponse struct {
	OK             bool              `json:"ok"`
	Reference      string            `json:"reference,omitempty"`
	DismissAfterMs int64             `json:"dismissAfterMs,omitempty"`
	Errors         map[string]string `json:"errors,omitempty"`
	Error          string            `json:"error,omitempty"`
}

func wantsJSON(r *http.Request) bool {
	if ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && ct == "application/json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func decodeBooking(r *http.Request) (services.BookingRequest, error) {
	var req services.BookingRequest
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	return services.BookingRequest{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Phone:   r.PostForm.Get("phone"),
		Date:    r.PostForm.Get("date"),
		Message: r.PostForm.Get("message"),
	}, nil
}

// BookingHandler handles booking form submissions. HTML clients get the home
// page back with the form state; JSON clients get a bookingResponse.
func (h *Handler) BookingHandler(w http.ResponseWriter, r *http.Request) {
	asJSON := wantsJSON(r)
	r.Body = http.MaxBytesReader(w, r.Body, maxBookingBody)

	req, err := decodeBooking(r)
	if err != nil {
		h.logger.Info("Invalid booking body", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !h.limiter.Allow() {
		h.logger.Warn("Booking rate limited", zap.String("remote", r.RemoteAddr))
		h.respondBooking(w, r, asJSON, http.StatusTooManyRequests,
			bookingResponse{Error: views.BookingLimitedMessage},
			views.FailedBookingForm(req.Normalized(), views.BookingLimitedMessage))
		return
	}

	result, err := h.booking.Submit(r.Context(), req)
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		h.respondBooking(w, r, asJSON, http.StatusUnprocessableEntity,
			bookingResponse{Errors: verr.Fields},
			views.InvalidBookingForm(req.Normalized(), verr.Fields))
	case err != nil:
		h.respondBooking(w, r, asJSON, http.StatusBadGateway,
			bookingResponse{Error: views.BookingFailureMessage},
			views.FailedBookingForm(req.Normalized(), views.BookingFailureMessage))
	default:
		h.respondBooking(w, r, asJSON, http.StatusOK,
			bookingResponse{OK: true, Reference: result.Reference, DismissAfterMs: h.opts.AckDuration.Milliseconds()},
			views.SentBookingForm(result.Reference, h.opts.AckDuration))
	}
}

func (h *Handler) respondBooking(w http.ResponseWriter, r *http.Request, asJSON bool, status int, body bookingResponse, form views.BookingForm) {
	if asJSON {
		writeJSON(w, status, body, h.logger)
		return
	}
	h.render(w, status, "home", h.loadHome(r.Context(), form))
}
