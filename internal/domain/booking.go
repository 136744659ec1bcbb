package domain

import "time"

// BookingStatusConfirmed is the status of a successfully created booking.
const BookingStatusConfirmed = "CONFIRMED"

// Passenger identifies one traveler on a booking.
type Passenger struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Segment is one leg of a trip.
type Segment struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

// Booking is a simulated reservation record. A real GDS/NDC integration
// would populate PNR and Reference from the provider instead.
type Booking struct {
	ID         string      `json:"id"`
	PNR        string      `json:"pnr"`
	Reference  string      `json:"booking_ref"`
	Status     string      `json:"status"`
	Passengers []Passenger `json:"passengers"`
	Segments   []Segment   `json:"segments"`
	CreatedAt  time.Time   `json:"created_at"`
}
