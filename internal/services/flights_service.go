package services

import (
	"context"
	"encoding/json"
	"fmt"

	"aviatickets/internal/provider"
	"aviatickets/internal/utils"
)

// FlightsService proxies fare search to the provider. Best-effort only:
// any gateway failure degrades to a mock-flagged empty result so the
// client can render an empty list instead of an error screen.
type FlightsService struct {
	Provider  ProviderAPI
	RequestID string
}

type mockSearchResponse struct {
	Error   bool  `json:"error"`
	Mock    bool  `json:"mock"`
	Results []any `json:"results"`
}

func (s FlightsService) Search(ctx context.Context, from, to, date string) json.RawMessage {
	payload := provider.RoutePricingRequest{
		AdultQuantity: 1,
		Tariff:        "Standard",
		ServiceClass:  "Economic",
		Segments: []provider.Segment{
			{
				OriginCode:      utils.NormalizeCode(from),
				DestinationCode: utils.NormalizeCode(to),
				DepartureDate:   fmt.Sprintf("%sT00:00:00", utils.TrimOrEmpty(date)),
			},
		},
	}

	resp, err := s.Provider.Call(ctx, provider.EndpointRoutePricing, payload, provider.KindJSON)
	if err != nil {
		utils.LogEvent(s.RequestID, "flights", "search", "provider search failed, returning mock results")
		mock, _ := json.Marshal(mockSearchResponse{Error: true, Mock: true, Results: []any{}})
		return mock
	}

	return json.RawMessage(resp.Body)
}
