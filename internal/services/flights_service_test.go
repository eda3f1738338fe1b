package services

import (
	"context"
	"encoding/json"
	"testing"

	"aviatickets/internal/provider"
)

func TestSearchPassesProviderBodyThrough(t *testing.T) {
	body := `{"Routes":[{"Amount":5600}]}`
	p := &stubProvider{fn: func(endpoint string) (provider.Response, error) {
		if endpoint != provider.EndpointRoutePricing {
			t.Fatalf("unexpected endpoint %s", endpoint)
		}
		return provider.Response{Status: 200, Body: []byte(body)}, nil
	}}
	svc := FlightsService{Provider: p}

	got := svc.Search(context.Background(), "led", "svo", "2025-12-20")
	if string(got) != body {
		t.Fatalf("provider body altered: %s", got)
	}
}

func TestSearchDegradesToMockOnFailure(t *testing.T) {
	svc := FlightsService{Provider: &stubProvider{}}

	got := svc.Search(context.Background(), "LED", "SVO", "2025-12-20")

	var mock struct {
		Error   bool  `json:"error"`
		Mock    bool  `json:"mock"`
		Results []any `json:"results"`
	}
	if err := json.Unmarshal(got, &mock); err != nil {
		t.Fatalf("mock response not json: %v", err)
	}
	if !mock.Error || !mock.Mock {
		t.Fatalf("mock flags not set: %+v", mock)
	}
	if mock.Results == nil || len(mock.Results) != 0 {
		t.Fatalf("results must be an empty array, got %v", mock.Results)
	}
}
