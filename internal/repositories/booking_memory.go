package repositories

import (
	"strings"
	"sync"

	"aviatickets/internal/domain"
	"aviatickets/internal/domain/models"
)

// MemoryBookingStore keeps bookings in process memory. It replaces the ad
// hoc global arrays of earlier iterations of this backend and is the
// backend of last resort when MySQL is not reachable at startup.
type MemoryBookingStore struct {
	mu         sync.RWMutex
	byID       map[string]models.Booking
	byProvider map[string]string // provider_booking_id -> internal id
}

func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{
		byID:       map[string]models.Booking{},
		byProvider: map[string]string{},
	}
}

func (s *MemoryBookingStore) Name() string { return "memory" }

func (s *MemoryBookingStore) Put(b models.Booking) error {
	if strings.TrimSpace(b.ID) == "" {
		return domain.ValidationError{Field: "id", Msg: "empty booking id"}
	}
	if strings.TrimSpace(b.ProviderBookingID) == "" {
		return domain.ValidationError{Field: "providerBookingId", Msg: "empty provider booking id"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ownerID, ok := s.byProvider[b.ProviderBookingID]; ok && ownerID != b.ID {
		return domain.ConflictError{Resource: "booking", Msg: "provider booking id already in use"}
	}

	// Overwrite by internal id; drop a stale provider-id index entry when
	// the id was re-extracted.
	if prev, ok := s.byID[b.ID]; ok && prev.ProviderBookingID != b.ProviderBookingID {
		delete(s.byProvider, prev.ProviderBookingID)
	}

	s.byID[b.ID] = b
	s.byProvider[b.ProviderBookingID] = b.ID
	return nil
}

func (s *MemoryBookingStore) GetByID(id string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byID[id]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (s *MemoryBookingStore) FindByProviderID(providerID string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byProvider[providerID]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return s.byID[id], nil
}

func (s *MemoryBookingStore) ListByOwner(ownerEmail string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range s.byID {
		if b.OwnerEmail == ownerEmail {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *MemoryBookingStore) UpdateStatus(providerID, status string) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byProvider[providerID]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	b := s.byID[id]
	b.Status = status
	s.byID[id] = b
	return b, nil
}
