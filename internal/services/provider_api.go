package services

import (
	"context"

	"aviatickets/internal/provider"
)

// ProviderAPI is what the services need from the Onelya gateway. Tests
// substitute a stub; production wires *provider.Client.
type ProviderAPI interface {
	Call(ctx context.Context, endpoint string, payload any, kind provider.ResponseKind) (provider.Response, error)
	Configured() bool
	Pos() string
}
