package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s belongs to the closed status set.
// Cancellation goes through CancelBooking, but "cancelled" is still a
// legal value for the explicit status update.
func ValidStatus(s string) bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID            string    `json:"id"`
	BookingNumber string    `json:"bookingNumber"`
	FlightID      string    `json:"flightId"`
	Flight        *Flight   `json:"flight,omitempty"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Passport      string    `json:"passport"`
	BirthDate     string    `json:"birthDate"`
	Nationality   string    `json:"nationality"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Seat          string    `json:"seat"`
	Status        string    `json:"status"`
	PassportFile  string    `json:"passportFile,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BookingSpec is the create input; the booking number and status are
// assigned by the service.
type BookingSpec struct {
	FlightID     string `json:"flightId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Passport     string `json:"passport"`
	BirthDate    string `json:"birthDate"`
	Nationality  string `json:"nationality"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Seat         string `json:"seat"`
	PassportFile string `json:"passportFile,omitempty"`
}

// NewBookingNumber builds a booking number of the form
// {PREFIX}-{7 uppercase chars drawn from a fresh UUID}.
func NewBookingNumber(prefix string) string {
	token := strings.ToUpper(uuid.NewString()[:7])
	return prefix + "-" + token
}
