package services

import (
	"context"
	"encoding/json"
	"fmt"

	"aviatickets/internal/domain"
	"aviatickets/internal/domain/models"
	"aviatickets/internal/provider"
	"aviatickets/internal/repositories"
	"aviatickets/internal/utils"

	"github.com/google/uuid"
)

// Prefix for locally synthesized provider booking ids. Real Onelya ids
// are numeric, so the namespaces never collide.
const localIDPrefix = "onelya-"

// Fallback defaults mirror the demo itinerary the mobile client was
// built against.
const (
	fallbackFrom   = "LED"
	fallbackTo     = "SVO"
	fallbackPrice  = 5600
	fallbackFlight = "SU 5411"
	fallbackDepart = "23:15"
	fallbackArrive = "23:55"
)

// BookingService owns the booking lifecycle: provider-backed creation
// with local fallback, confirm, and lookups. It holds no booking state
// of its own; the store is the single owner of persisted records.
type BookingService struct {
	Provider  ProviderAPI
	Store     repositories.BookingStore
	RequestID string
}

// CreateResult distinguishes "booked for real" from "booked as a safety
// net": ProviderOK is false and Err non-nil on the fallback path, with
// the booking still present and persisted.
type CreateResult struct {
	Booking    models.Booking
	Raw        json.RawMessage
	ProviderOK bool
	Err        error
}

// ConfirmResult carries the provider confirm response or the failure.
type ConfirmResult struct {
	Success bool
	Raw     json.RawMessage
	Err     error
}

// Create attempts a provider reservation and falls back to a local
// booking on any provider failure or when the request lacks the minimal
// reservation payload. The returned error is non-nil only when
// persistence itself failed.
func (s BookingService) Create(ctx context.Context, req models.CreateBookingRequest, ownerEmail string) (CreateResult, error) {
	if err := validateReservation(req.Reservation); err != nil {
		// Recoverable input defect: skip the provider, book the safety net.
		utils.LogEvent(s.RequestID, "booking", "create", "reservation payload incomplete, using local fallback")
		return s.createFallback(req, ownerEmail, err)
	}

	payload := provider.ReservationCreateRequest{
		ContactPhone:       req.Reservation.ContactPhone,
		ContactEmails:      contactEmails(req),
		Customers:          req.Reservation.Customers,
		ReservationItems:   req.Reservation.ReservationItems,
		CheckDoubleBooking: req.Reservation.CheckDoubleBooking,
	}

	resp, err := s.Provider.Call(ctx, provider.EndpointReservationCreate, payload, provider.KindJSON)
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("provider create failed (%s), using local fallback", domain.ProviderKind(err)))
		return s.createFallback(req, ownerEmail, err)
	}

	providerID, found := provider.ExtractReservationID(resp.Body)
	if !found {
		providerID = localIDPrefix + uuid.NewString()
	}

	booking := bookingFromRequest(req, ownerEmail)
	booking.ProviderBookingID = providerID
	booking.Provider = models.ProviderOnelya
	booking.Status = models.StatusReserved
	booking.Raw = json.RawMessage(resp.Body)

	if err := s.Store.Put(booking); err != nil {
		return CreateResult{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("reserved provider_booking_id=%s", providerID))
	return CreateResult{Booking: booking, Raw: booking.Raw, ProviderOK: true}, nil
}

func (s BookingService) createFallback(req models.CreateBookingRequest, ownerEmail string, cause error) (CreateResult, error) {
	booking := bookingFromRequest(req, ownerEmail)
	booking.From = utils.FirstNonEmpty(booking.From, fallbackFrom)
	booking.To = utils.FirstNonEmpty(booking.To, fallbackTo)
	booking.Date = utils.FirstNonEmpty(booking.Date, utils.FormatDate(utils.NowUTC()))
	booking.FlightNumber = utils.FirstNonEmpty(booking.FlightNumber, fallbackFlight)
	booking.DepartTime = utils.FirstNonEmpty(booking.DepartTime, fallbackDepart)
	booking.ArriveTime = utils.FirstNonEmpty(booking.ArriveTime, fallbackArrive)
	if booking.Price == 0 {
		booking.Price = fallbackPrice
	}

	// Provider-default operational fields keep the document pipeline
	// working without the provider.
	booking.Seat = models.DefaultSeat
	booking.Gate = models.DefaultGate
	booking.BoardingTime = models.DefaultBoardingTime

	booking.ProviderBookingID = localIDPrefix + booking.ID
	booking.Provider = models.ProviderLocalFallback
	booking.Status = models.StatusPending

	if err := s.Store.Put(booking); err != nil {
		return CreateResult{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("fallback provider_booking_id=%s", booking.ProviderBookingID))
	return CreateResult{Booking: booking, ProviderOK: false, Err: cause}, nil
}

// Confirm transitions a booking to CONFIRMED after the provider accepts
// the confirmation. Provider failure leaves the booking untouched and is
// reported, never retried.
func (s BookingService) Confirm(ctx context.Context, providerBookingID string) (ConfirmResult, error) {
	if _, err := s.Store.FindByProviderID(providerBookingID); err != nil {
		return ConfirmResult{}, err
	}

	payload := provider.ReservationRefRequest{ReservationID: providerBookingID, Pos: s.Provider.Pos()}
	resp, err := s.Provider.Call(ctx, provider.EndpointReservationConfirm, payload, provider.KindJSON)
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "confirm", fmt.Sprintf("provider confirm failed (%s), status unchanged", domain.ProviderKind(err)))
		return ConfirmResult{Success: false, Err: err}, nil
	}

	if _, err := s.Store.UpdateStatus(providerBookingID, models.StatusConfirmed); err != nil {
		return ConfirmResult{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "confirm", fmt.Sprintf("confirmed provider_booking_id=%s", providerBookingID))
	return ConfirmResult{Success: true, Raw: json.RawMessage(resp.Body)}, nil
}

// GetByID is a pure read; a miss is a NotFoundError, never a panic.
func (s BookingService) GetByID(id string) (models.Booking, error) {
	return s.Store.GetByID(id)
}

// FindByProviderID is a pure read by the provider-assigned id.
func (s BookingService) FindByProviderID(providerID string) (models.Booking, error) {
	return s.Store.FindByProviderID(providerID)
}

// ListByOwner returns the bookings created under an account email.
func (s BookingService) ListByOwner(ownerEmail string) ([]models.Booking, error) {
	return s.Store.ListByOwner(ownerEmail)
}

func validateReservation(r *models.ReservationPayload) error {
	if r == nil {
		return domain.ValidationError{Field: "reservation", Msg: "reservation payload required"}
	}
	if len(r.Customers) == 0 {
		return domain.ValidationError{Field: "reservation.customers", Msg: "at least one customer required"}
	}
	if len(r.ReservationItems) == 0 {
		return domain.ValidationError{Field: "reservation.reservationItems", Msg: "at least one reservation item required"}
	}
	return nil
}

func contactEmails(req models.CreateBookingRequest) []string {
	if req.Reservation != nil && len(req.Reservation.ContactEmails) > 0 {
		return req.Reservation.ContactEmails
	}
	if req.Contact.Email != "" {
		return []string{req.Contact.Email}
	}
	return nil
}

func bookingFromRequest(req models.CreateBookingRequest, ownerEmail string) models.Booking {
	return models.Booking{
		ID:            uuid.NewString(),
		From:          utils.NormalizeCode(req.From),
		To:            utils.NormalizeCode(req.To),
		Date:          utils.TrimOrEmpty(req.Date),
		FlightNumber:  utils.TrimOrEmpty(req.FlightNumber),
		DepartTime:    utils.TrimOrEmpty(req.DepartTime),
		ArriveTime:    utils.TrimOrEmpty(req.ArriveTime),
		ReturnDate:    utils.TrimOrEmpty(req.ReturnDate),
		RoundTrip:     req.RoundTrip,
		Contact:       req.Contact,
		Passengers:    req.Passengers,
		OwnerEmail:    ownerEmail,
		Price:         req.Price,
		Currency:      utils.FirstNonEmpty(req.Currency, "RUB"),
		PaymentStatus: "pending",
		CreatedAt:     utils.FormatDateTime(utils.NowUTC()),
	}
}
