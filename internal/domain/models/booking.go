package models

import "encoding/json"

// Booking statuses. A booking is created RESERVED (provider path) or
// PENDING (local fallback) and only ever advances to CONFIRMED.
const (
	StatusPending   = "PENDING"
	StatusReserved  = "RESERVED"
	StatusConfirmed = "CONFIRMED"
)

// Provenance values for Booking.Provider.
const (
	ProviderOnelya        = "onelya"
	ProviderLocalFallback = "local-fallback"
)

// Defaults applied when a booking reaches the document pipeline without
// operational fields set.
const (
	DefaultSeat         = "12A"
	DefaultGate         = "B5"
	DefaultBoardingTime = "08:45"
)

// Contact is the booking-level contact person.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Booking is the canonical reservation record. ProviderBookingID is
// either issued by Onelya or synthesized locally with an "onelya-"
// prefix; Provider records which. Raw keeps the provider create response
// verbatim for audit and is never interpreted past the mapped fields.
type Booking struct {
	ID                string `json:"id"`
	ProviderBookingID string `json:"providerBookingId"`
	Provider          string `json:"provider"`
	Status            string `json:"status"`

	From         string `json:"from"`
	To           string `json:"to"`
	Date         string `json:"date"`
	FlightNumber string `json:"flightNumber,omitempty"`
	DepartTime   string `json:"departTime,omitempty"`
	ArriveTime   string `json:"arriveTime,omitempty"`
	ReturnDate   string `json:"returnDate,omitempty"`
	RoundTrip    bool   `json:"roundTrip,omitempty"`

	Contact    Contact           `json:"contact"`
	Passengers []json.RawMessage `json:"passengers,omitempty"`
	OwnerEmail string            `json:"-"`

	Price         int64  `json:"price"`
	Currency      string `json:"currency"`
	PaymentStatus string `json:"paymentStatus"`

	Seat         string `json:"seat,omitempty"`
	Gate         string `json:"gate,omitempty"`
	BoardingTime string `json:"boardingTime,omitempty"`

	Raw       json.RawMessage `json:"-"`
	CreatedAt string          `json:"createdAt,omitempty"`
}

// PassengerCount is the only view this core takes of the passenger list.
func (b Booking) PassengerCount() int {
	if len(b.Passengers) == 0 {
		return 1
	}
	return len(b.Passengers)
}

// ReservationPayload is the optional pass-through part of a create
// request: the customers/items the client selected for the provider.
// Constructed fresh per call, never persisted.
type ReservationPayload struct {
	ContactPhone       string            `json:"contactPhone,omitempty"`
	ContactEmails      []string          `json:"contactEmails,omitempty"`
	Customers          []json.RawMessage `json:"customers,omitempty"`
	ReservationItems   []json.RawMessage `json:"reservationItems,omitempty"`
	CheckDoubleBooking bool              `json:"checkDoubleBooking,omitempty"`
}

// CreateBookingRequest is the inbound create body.
type CreateBookingRequest struct {
	From         string              `json:"from"`
	To           string              `json:"to"`
	Date         string              `json:"date"`
	Price        int64               `json:"price"`
	Currency     string              `json:"currency"`
	Contact      Contact             `json:"contact"`
	FlightNumber string              `json:"flightNumber"`
	DepartTime   string              `json:"departTime"`
	ArriveTime   string              `json:"arriveTime"`
	ReturnDate   string              `json:"returnDate"`
	RoundTrip    bool                `json:"roundTrip"`
	Passengers   []json.RawMessage   `json:"passengers"`
	Reservation  *ReservationPayload `json:"reservation"`
}

// Blank kinds.
const (
	BlankPDF  = "pdf"
	BlankJSON = "json"
)

// Blank is the result of a document fetch: either binary document bytes
// or structured provider data, regenerated on every request.
type Blank struct {
	Kind        string          `json:"type"`
	ContentType string          `json:"-"`
	PDF         []byte          `json:"-"`
	Data        json.RawMessage `json:"data,omitempty"`
}
