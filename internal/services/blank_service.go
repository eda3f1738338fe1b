package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"aviatickets/internal/domain"
	"aviatickets/internal/domain/models"
	"aviatickets/internal/provider"
	"aviatickets/internal/utils"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/phpdave11/gofpdf"
)

// BlankService produces the boarding document for a booking. Resolution
// is three tiers and nothing more: the Avia blank endpoint, the Order
// blank endpoint, then a locally rendered boarding pass.
type BlankService struct {
	Provider  ProviderAPI
	FontDir   string
	RequestID string
}

var blankEndpoints = []string{
	provider.EndpointBlankAvia,
	provider.EndpointBlankOrder,
}

// GetBlank fetches or renders the document for a booking. The error is
// non-nil only when the final local render itself failed; provider-tier
// failures are absorbed by the next tier.
func (s BlankService) GetBlank(ctx context.Context, booking models.Booking) (models.Blank, error) {
	payload := provider.ReservationRefRequest{
		ReservationID: booking.ProviderBookingID,
		Pos:           s.Provider.Pos(),
	}

	for _, endpoint := range blankEndpoints {
		resp, err := s.Provider.Call(ctx, endpoint, payload, provider.KindBinary)
		if err != nil {
			utils.LogEvent(s.RequestID, "blank", "fetch", fmt.Sprintf("endpoint=%s failed (%s), trying next tier", endpoint, domain.ProviderKind(err)))
			continue
		}

		if strings.Contains(resp.ContentType, "application/pdf") {
			utils.LogEvent(s.RequestID, "blank", "fetch", fmt.Sprintf("endpoint=%s pdf bytes=%d", endpoint, len(resp.Body)))
			return models.Blank{Kind: models.BlankPDF, ContentType: resp.ContentType, PDF: resp.Body}, nil
		}

		// Structured data: hand it back as-is, no re-encoding.
		utils.LogEvent(s.RequestID, "blank", "fetch", fmt.Sprintf("endpoint=%s json bytes=%d", endpoint, len(resp.Body)))
		return models.Blank{Kind: models.BlankJSON, ContentType: resp.ContentType, Data: asJSON(resp.Body)}, nil
	}

	utils.LogEvent(s.RequestID, "blank", "fetch", "all provider tiers failed, rendering locally")
	return s.renderLocal(booking)
}

// renderLocal draws a single-page boarding pass with a scannable Code 128
// barcode of the provider booking id.
func (s BlankService) renderLocal(booking models.Booking) (models.Blank, error) {
	pdf := gofpdf.New("L", "mm", "A5", "")
	pdf.SetTitle("Boarding Pass", false)
	pdf.AddPage()

	font := s.pickFont(pdf)

	pdf.SetFont(font, "B", 20)
	pdf.Cell(0, 12, "BOARDING PASS")
	pdf.Ln(14)

	pdf.SetFont(font, "B", 16)
	pdf.Cell(0, 9, fmt.Sprintf("%s -> %s", safe(booking.From, "-"), safe(booking.To, "-")))
	pdf.Ln(11)

	pdf.SetFont(font, "", 11)
	lines := []string{
		fmt.Sprintf("Passenger : %s", safe(booking.Contact.Name, "-")),
		fmt.Sprintf("Flight    : %s", safe(booking.FlightNumber, "-")),
		fmt.Sprintf("Date      : %s", safe(booking.Date, "-")),
		fmt.Sprintf("Departure : %s    Arrival : %s", safe(utils.TimeHM(booking.DepartTime), "-"), safe(utils.TimeHM(booking.ArriveTime), "-")),
		fmt.Sprintf("Seat %s    Gate %s    Boarding %s",
			safe(booking.Seat, models.DefaultSeat),
			safe(booking.Gate, models.DefaultGate),
			safe(booking.BoardingTime, models.DefaultBoardingTime)),
		fmt.Sprintf("Price     : %s", utils.FormatPrice(booking.Price, booking.Currency)),
	}
	for _, line := range lines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	pdf.Ln(4)
	s.drawBarcode(pdf, booking.ProviderBookingID)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		// No further fallback exists below the local render.
		return models.Blank{}, domain.InternalError{Msg: "boarding pass render failed", Err: err}
	}

	return models.Blank{Kind: models.BlankPDF, ContentType: "application/pdf", PDF: buf.Bytes()}, nil
}

// drawBarcode embeds a Code 128 of the booking id. Encoding failure is
// logged and the document is emitted without the barcode.
func (s BlankService) drawBarcode(pdf *gofpdf.Fpdf, code string) {
	if strings.TrimSpace(code) == "" {
		return
	}

	bc, err := code128.Encode(code)
	if err != nil {
		utils.LogEvent(s.RequestID, "blank", "barcode", fmt.Sprintf("encode failed: %v", err))
		return
	}
	scaled, err := barcode.Scale(bc, 600, 120)
	if err != nil {
		utils.LogEvent(s.RequestID, "blank", "barcode", fmt.Sprintf("scale failed: %v", err))
		return
	}

	var img bytes.Buffer
	if err := png.Encode(&img, scaled); err != nil {
		utils.LogEvent(s.RequestID, "blank", "barcode", fmt.Sprintf("png encode failed: %v", err))
		return
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("booking-barcode", opts, &img)
	x := pdf.GetX()
	y := pdf.GetY()
	pdf.ImageOptions("booking-barcode", x, y, 100, 20, false, opts, 0, "")

	pdf.SetY(y + 21)
	pdf.SetFontSize(8)
	pdf.Cell(0, 4, code)
}

// pickFont registers the first TTF found in FontDir under the name
// "custom"; missing or unreadable fonts fall back to the built-in
// Helvetica and are never fatal.
func (s BlankService) pickFont(pdf *gofpdf.Fpdf) string {
	if s.FontDir == "" {
		return "Helvetica"
	}
	matches, err := filepath.Glob(filepath.Join(s.FontDir, "*.ttf"))
	if err != nil || len(matches) == 0 {
		return "Helvetica"
	}
	if _, err := os.Stat(matches[0]); err != nil {
		return "Helvetica"
	}
	pdf.AddUTF8Font("custom", "", matches[0])
	pdf.AddUTF8Font("custom", "B", matches[0])
	if pdf.Err() {
		utils.LogEvent(s.RequestID, "blank", "font", "custom font load failed, using Helvetica")
		pdf.ClearError()
		return "Helvetica"
	}
	return "custom"
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

// asJSON wraps non-JSON provider bodies so they stay representable in a
// JSON response without re-encoding valid payloads.
func asJSON(body []byte) json.RawMessage {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return json.RawMessage(strconv.Quote(string(body)))
}
