package provider

import "encoding/json"

// Wire shapes for the Onelya order API. Field names follow the provider
// contract, not this backend's conventions.

type ReservationCreateRequest struct {
	ContactPhone       string            `json:"ContactPhone,omitempty"`
	ContactEmails      []string          `json:"ContactEmails,omitempty"`
	Customers          []json.RawMessage `json:"Customers"`
	ReservationItems   []json.RawMessage `json:"ReservationItems"`
	CheckDoubleBooking bool              `json:"CheckDoubleBooking"`
}

type ReservationRefRequest struct {
	ReservationID string `json:"ReservationId"`
	Pos           string `json:"Pos,omitempty"`
}

type Segment struct {
	OriginCode      string `json:"OriginCode"`
	DestinationCode string `json:"DestinationCode"`
	DepartureDate   string `json:"DepartureDate"`
}

type RoutePricingRequest struct {
	AdultQuantity            int       `json:"AdultQuantity"`
	ChildQuantity            int       `json:"ChildQuantity"`
	BabyWithoutPlaceQuantity int       `json:"BabyWithoutPlaceQuantity"`
	Tariff                   string    `json:"Tariff"`
	ServiceClass             string    `json:"ServiceClass"`
	DirectOnly               bool      `json:"DirectOnly"`
	Segments                 []Segment `json:"Segments"`
}
