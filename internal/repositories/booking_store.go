package repositories

import "aviatickets/internal/domain/models"

// BookingStore is the durable keyed storage for booking records. The
// orchestrator never holds a second live copy of a booking: every
// mutation goes through Put or UpdateStatus.
//
// Put inserts a new record or overwrites the record with the same
// internal id. A provider booking id already held by a different record
// is rejected as a ConflictError.
type BookingStore interface {
	Put(b models.Booking) error
	GetByID(id string) (models.Booking, error)
	FindByProviderID(providerID string) (models.Booking, error)
	ListByOwner(ownerEmail string) ([]models.Booking, error)
	UpdateStatus(providerID, status string) (models.Booking, error)
	Name() string
}
