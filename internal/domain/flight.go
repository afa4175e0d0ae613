package domain

import "time"

// Flight ids are opaque strings; each backend uses its own native key
// format (Mongo ObjectID hex, Postgres UUID, Redis UUID).
type Flight struct {
	ID               string    `json:"id"`
	Number           string    `json:"number"`
	From             string    `json:"from"`
	To               string    `json:"to"`
	DepartureTime    string    `json:"departureTime"`
	ArrivalTime      string    `json:"arrivalTime"`
	Date             string    `json:"date"`
	BaggageAllowance int       `json:"baggageAllowance"`
	Price            float64   `json:"price"`
	Gate             string    `json:"gate,omitempty"`
	IsActive         bool      `json:"isActive"`
	OccupiedSeats    []string  `json:"occupiedSeats"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FlightSpec is the create input. IsActive defaults to true and
// OccupiedSeats to empty when omitted.
type FlightSpec struct {
	Number           string   `json:"number"`
	From             string   `json:"from"`
	To               string   `json:"to"`
	DepartureTime    string   `json:"departureTime"`
	ArrivalTime      string   `json:"arrivalTime"`
	Date             string   `json:"date"`
	BaggageAllowance int      `json:"baggageAllowance"`
	Price            float64  `json:"price"`
	Gate             string   `json:"gate,omitempty"`
	OccupiedSeats    []string `json:"occupiedSeats,omitempty"`
}

// FlightPatch carries a partial update; nil fields leave the stored
// record untouched.
type FlightPatch struct {
	Number           *string   `json:"number,omitempty"`
	From             *string   `json:"from,omitempty"`
	To               *string   `json:"to,omitempty"`
	DepartureTime    *string   `json:"departureTime,omitempty"`
	ArrivalTime      *string   `json:"arrivalTime,omitempty"`
	Date             *string   `json:"date,omitempty"`
	BaggageAllowance *int      `json:"baggageAllowance,omitempty"`
	Price            *float64  `json:"price,omitempty"`
	Gate             *string   `json:"gate,omitempty"`
	IsActive         *bool     `json:"isActive,omitempty"`
	OccupiedSeats    *[]string `json:"occupiedSeats,omitempty"`
}

// Apply merges the patch over f.
func (p FlightPatch) Apply(f *Flight) {
	if p.Number != nil {
		f.Number = *p.Number
	}
	if p.From != nil {
		f.From = *p.From
	}
	if p.To != nil {
		f.To = *p.To
	}
	if p.DepartureTime != nil {
		f.DepartureTime = *p.DepartureTime
	}
	if p.ArrivalTime != nil {
		f.ArrivalTime = *p.ArrivalTime
	}
	if p.Date != nil {
		f.Date = *p.Date
	}
	if p.BaggageAllowance != nil {
		f.BaggageAllowance = *p.BaggageAllowance
	}
	if p.Price != nil {
		f.Price = *p.Price
	}
	if p.Gate != nil {
		f.Gate = *p.Gate
	}
	if p.IsActive != nil {
		f.IsActive = *p.IsActive
	}
	if p.OccupiedSeats != nil {
		f.OccupiedSeats = *p.OccupiedSeats
	}
}

// TaggedFlight is a flight labeled with the airport it came from, used
// by the cross-airport listing and search views.
type TaggedFlight struct {
	Flight
	Airport string `json:"airport"`
}
