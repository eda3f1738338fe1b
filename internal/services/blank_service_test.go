package services

import (
	"context"
	"strings"
	"testing"

	"aviatickets/internal/domain"
	"aviatickets/internal/domain/models"
	"aviatickets/internal/provider"
)

func transportErr(endpoint string) error {
	return domain.ProviderError{Kind: domain.ProviderTransport, Endpoint: endpoint}
}

func blankBooking() models.Booking {
	return models.Booking{
		ID:                "b1",
		ProviderBookingID: "777001",
		Provider:          models.ProviderOnelya,
		Status:            models.StatusReserved,
		From:              "LED",
		To:                "SVO",
		Date:              "2025-12-20",
		FlightNumber:      "SU 5411",
		DepartTime:        "23:15",
		ArriveTime:        "23:55",
		Contact:           models.Contact{Name: "Ivan Petrov"},
		Price:             5600,
		Currency:          "RUB",
	}
}

func TestGetBlankReturnsProviderPDF(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake blank")
	p := &stubProvider{fn: func(endpoint string) (provider.Response, error) {
		return provider.Response{Status: 200, ContentType: "application/pdf", Body: pdfBytes}, nil
	}}
	svc := BlankService{Provider: p}

	blank, err := svc.GetBlank(context.Background(), blankBooking())
	if err != nil {
		t.Fatalf("GetBlank returned error: %v", err)
	}
	if blank.Kind != models.BlankPDF {
		t.Fatalf("kind = %s, want pdf", blank.Kind)
	}
	if string(blank.PDF) != string(pdfBytes) {
		t.Fatalf("provider pdf bytes altered")
	}
	if len(p.calls) != 1 || p.calls[0] != provider.EndpointBlankAvia {
		t.Fatalf("expected a single avia blank call, got %v", p.calls)
	}
}

func TestGetBlankFallsThroughToOrderEndpoint(t *testing.T) {
	p := &stubProvider{fn: func(endpoint string) (provider.Response, error) {
		if endpoint == provider.EndpointBlankAvia {
			return provider.Response{}, transportErr(endpoint)
		}
		return provider.Response{Status: 200, ContentType: "application/json", Body: []byte(`{"Blank":"data"}`)}, nil
	}}
	svc := BlankService{Provider: p}

	blank, err := svc.GetBlank(context.Background(), blankBooking())
	if err != nil {
		t.Fatalf("GetBlank returned error: %v", err)
	}
	if blank.Kind != models.BlankJSON {
		t.Fatalf("kind = %s, want json", blank.Kind)
	}
	if string(blank.Data) != `{"Blank":"data"}` {
		t.Fatalf("json payload re-encoded: %s", blank.Data)
	}
	if len(p.calls) != 2 {
		t.Fatalf("expected both blank tiers tried, got %v", p.calls)
	}
}

func TestGetBlankRendersLocallyWhenProviderDown(t *testing.T) {
	p := &stubProvider{} // both tiers fail
	svc := BlankService{Provider: p}

	blank, err := svc.GetBlank(context.Background(), blankBooking())
	if err != nil {
		t.Fatalf("local render failed: %v", err)
	}
	if blank.Kind != models.BlankPDF || blank.ContentType != "application/pdf" {
		t.Fatalf("local render must yield a pdf: %+v", blank.Kind)
	}
	if !strings.HasPrefix(string(blank.PDF), "%PDF") {
		t.Fatalf("output does not look like a pdf")
	}
	if len(p.calls) != 2 {
		t.Fatalf("expected both blank tiers tried before local render, got %v", p.calls)
	}
}

func TestRenderLocalSurvivesEmptyBooking(t *testing.T) {
	// No provider id means no barcode; the pass still renders.
	svc := BlankService{Provider: &stubProvider{}}

	blank, err := svc.GetBlank(context.Background(), models.Booking{})
	if err != nil {
		t.Fatalf("render of empty booking failed: %v", err)
	}
	if !strings.HasPrefix(string(blank.PDF), "%PDF") {
		t.Fatalf("output does not look like a pdf")
	}
}

func TestAsJSONQuotesNonJSON(t *testing.T) {
	if got := string(asJSON([]byte(`{"a":1}`))); got != `{"a":1}` {
		t.Fatalf("valid json re-encoded: %s", got)
	}
	if got := string(asJSON([]byte("plain text"))); got != `"plain text"` {
		t.Fatalf("non-json not quoted: %s", got)
	}
}
