package domain

// Airport is a static catalog entry: display metadata only, independent
// of the live flight and booking data.
type Airport struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Code        string       `json:"code"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	ImageURL    string       `json:"imageUrl"`
	Stats       AirportStats `json:"stats"`
	Features    []string     `json:"features"`
}

type AirportStats struct {
	Flights      int `json:"flights"`
	Destinations int `json:"destinations"`
}

type DashboardStats struct {
	TotalFlights      int            `json:"totalFlights"`
	TotalBookings     int            `json:"totalBookings"`
	FlightsByAirport  map[string]int `json:"flightsByAirport"`
	BookingsByAirport map[string]int `json:"bookingsByAirport"`
}
