package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"aviatickets/internal/domain"
	"aviatickets/internal/domain/models"
	"aviatickets/internal/provider"
	"aviatickets/internal/repositories"
)

type stubProvider struct {
	calls []string
	fn    func(endpoint string) (provider.Response, error)
}

func (s *stubProvider) Call(_ context.Context, endpoint string, _ any, _ provider.ResponseKind) (provider.Response, error) {
	s.calls = append(s.calls, endpoint)
	if s.fn == nil {
		return provider.Response{}, domain.ProviderError{Kind: domain.ProviderTransport, Endpoint: endpoint}
	}
	return s.fn(endpoint)
}

func (s *stubProvider) Configured() bool { return true }
func (s *stubProvider) Pos() string      { return "test-pos" }

func validCreateRequest() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		From:  "LED",
		To:    "SVO",
		Date:  "2025-12-20",
		Price: 5600,
		Contact: models.Contact{
			Name:  "Ivan Petrov",
			Email: "ivan@example.com",
		},
		FlightNumber: "SU 5411",
		DepartTime:   "23:15",
		ArriveTime:   "23:55",
		Reservation: &models.ReservationPayload{
			Customers:        []json.RawMessage{json.RawMessage(`{"FirstName":"Ivan"}`)},
			ReservationItems: []json.RawMessage{json.RawMessage(`{"FareId":"F1"}`)},
		},
	}
}

func newBookingService(p ProviderAPI) (BookingService, *repositories.MemoryBookingStore) {
	store := repositories.NewMemoryBookingStore()
	return BookingService{Provider: p, Store: store}, store
}

func TestCreateProviderSuccess(t *testing.T) {
	p := &stubProvider{fn: func(endpoint string) (provider.Response, error) {
		return provider.Response{Status: 200, Body: []byte(`{"OrderId":777001,"Amount":5600}`)}, nil
	}}
	svc, store := newBookingService(p)

	res, err := svc.Create(context.Background(), validCreateRequest(), "ivan@example.com")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !res.ProviderOK || res.Err != nil {
		t.Fatalf("expected provider path, got ok=%v err=%v", res.ProviderOK, res.Err)
	}

	b := res.Booking
	if b.Provider != models.ProviderOnelya {
		t.Fatalf("provider = %s, want onelya", b.Provider)
	}
	if b.ProviderBookingID != "777001" {
		t.Fatalf("provider id not extracted from response: %s", b.ProviderBookingID)
	}
	if b.Status != models.StatusReserved {
		t.Fatalf("status = %s, want RESERVED", b.Status)
	}
	if len(b.Raw) == 0 {
		t.Fatalf("raw provider response not retained")
	}

	stored, err := store.FindByProviderID("777001")
	if err != nil || stored.ID != b.ID {
		t.Fatalf("booking not persisted: %v", err)
	}
}

func TestCreateFallsBackOnProviderFailure(t *testing.T) {
	p := &stubProvider{} // every call fails with a transport error
	svc, store := newBookingService(p)

	res, err := svc.Create(context.Background(), validCreateRequest(), "ivan@example.com")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if res.ProviderOK {
		t.Fatalf("expected fallback path")
	}
	if res.Err == nil {
		t.Fatalf("original provider error must be attached")
	}

	b := res.Booking
	if b.Provider != models.ProviderLocalFallback {
		t.Fatalf("provider = %s, want local-fallback", b.Provider)
	}
	if !strings.HasPrefix(b.ProviderBookingID, "onelya-") {
		t.Fatalf("synthesized id not prefixed: %s", b.ProviderBookingID)
	}
	if b.Status != models.StatusPending {
		t.Fatalf("status = %s, want PENDING", b.Status)
	}
	if b.Seat != models.DefaultSeat || b.Gate != models.DefaultGate || b.BoardingTime != models.DefaultBoardingTime {
		t.Fatalf("operational defaults missing: seat=%s gate=%s boarding=%s", b.Seat, b.Gate, b.BoardingTime)
	}
	if b.From != "LED" || b.To != "SVO" {
		t.Fatalf("request fields not kept: %s -> %s", b.From, b.To)
	}

	if _, err := store.FindByProviderID(b.ProviderBookingID); err != nil {
		t.Fatalf("fallback booking not persisted: %v", err)
	}
}

func TestCreateSkipsProviderWithoutReservationPayload(t *testing.T) {
	p := &stubProvider{fn: func(endpoint string) (provider.Response, error) {
		t.Fatalf("provider must not be called for an incomplete payload")
		return provider.Response{}, nil
	}}
	svc, _ := newBookingService(p)

	req := validCreateRequest()
	req.Reservation = nil

	res, err := svc.Create(context.Background(), req, "")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if res.ProviderOK {
		t.Fatalf("expected fallback path")
	}
	if !domain.IsValidation(res.Err) {
		t.Fatalf("expected validation defect attached, got %v", res.Err)
	}
	if res.Booking.Provider != models.ProviderLocalFallback {
		t.Fatalf("provider = %s, want local-fallback", res.Booking.Provider)
	}
}

func TestCreateFallbackDefaultsEmptyRequest(t *testing.T) {
	p := &stubProvider{}
	svc, _ := newBookingService(p)

	res, err := svc.Create(context.Background(), models.CreateBookingRequest{}, "")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	b := res.Booking
	if b.From != "LED" || b.To != "SVO" || b.Price != 5600 || b.FlightNumber != "SU 5411" {
		t.Fatalf("fallback defaults not applied: %+v", b)
	}
	if b.Date == "" {
		t.Fatalf("fallback date must default to today")
	}
}

func TestConfirmTransitionsStatus(t *testing.T) {
	p := &stubProvider{fn: func(endpoint string) (provider.Response, error) {
		return provider.Response{Status: 200, Body: []byte(`{"Confirmed":true}`)}, nil
	}}
	svc, store := newBookingService(p)

	b := models.Booking{ID: "b1", ProviderBookingID: "777001", Provider: models.ProviderOnelya, Status: models.StatusReserved}
	if err := store.Put(b); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	res, err := svc.Confirm(context.Background(), "777001")
	if err != nil || !res.Success {
		t.Fatalf("Confirm failed: res=%+v err=%v", res, err)
	}

	got, _ := store.FindByProviderID("777001")
	if got.Status != models.StatusConfirmed {
		t.Fatalf("status = %s, want CONFIRMED", got.Status)
	}

	// Confirming again is idempotent.
	res, err = svc.Confirm(context.Background(), "777001")
	if err != nil || !res.Success {
		t.Fatalf("second Confirm failed: res=%+v err=%v", res, err)
	}
	again, _ := store.FindByProviderID("777001")
	if again.Status != models.StatusConfirmed || again.ID != got.ID {
		t.Fatalf("idempotent confirm changed the record: %+v", again)
	}
}

func TestConfirmLeavesStatusOnProviderFailure(t *testing.T) {
	p := &stubProvider{}
	svc, store := newBookingService(p)

	b := models.Booking{ID: "b1", ProviderBookingID: "777001", Provider: models.ProviderOnelya, Status: models.StatusReserved}
	if err := store.Put(b); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	res, err := svc.Confirm(context.Background(), "777001")
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if res.Success {
		t.Fatalf("confirm must fail when the provider is down")
	}
	if !domain.IsProvider(res.Err) {
		t.Fatalf("provider failure not surfaced: %v", res.Err)
	}

	got, _ := store.FindByProviderID("777001")
	if got.Status != models.StatusReserved {
		t.Fatalf("status changed on failed confirm: %s", got.Status)
	}
}

func TestConfirmUnknownBooking(t *testing.T) {
	p := &stubProvider{fn: func(endpoint string) (provider.Response, error) {
		t.Fatalf("provider must not be called for an unknown booking")
		return provider.Response{}, nil
	}}
	svc, _ := newBookingService(p)

	_, err := svc.Confirm(context.Background(), "missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
