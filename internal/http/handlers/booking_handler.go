package handlers

import (
	"net/http"

	"aviatickets/internal/domain"
	"aviatickets/internal/domain/models"
	"aviatickets/internal/http/middleware"
	"aviatickets/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Provider:  gateway,
		Store:     store,
		RequestID: middleware.GetRequestID(c),
	}
}

type confirmRequest struct {
	ProviderBookingID string `json:"providerBookingId"`
}

// POST /booking/create
//
// ok:true means the provider accepted the reservation; ok:false with a
// booking present means the local fallback was used and the client
// should render a degraded-but-successful booking, not an error screen.
func CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := bookingService(c)
	res, err := svc.Create(c.Request.Context(), req, middleware.GetUserEmail(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if res.ProviderOK {
		c.JSON(http.StatusOK, gin.H{
			"ok":        true,
			"booking":   res.Booking,
			"raw":       res.Raw,
			"onelya_ok": true,
		})
		return
	}

	errMsg := ""
	if res.Err != nil {
		errMsg = res.Err.Error()
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":        false,
		"booking":   res.Booking,
		"onelya_ok": false,
		"error":     errMsg,
	})
}

// POST /booking/confirm
func ConfirmBooking(c *gin.Context) {
	var req confirmRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.ProviderBookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "providerBookingId required"})
		return
	}

	svc := bookingService(c)
	res, err := svc.Confirm(c.Request.Context(), req.ProviderBookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if !res.Success {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": res.Err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "raw": res.Raw})
}

// GET /booking/:id/pdf
//
// The path id may be the internal booking id or the provider booking id;
// the mobile client sends whichever it has.
func GetBookingPDF(c *gin.Context) {
	id := c.Param("id")

	svc := bookingService(c)
	booking, err := svc.GetByID(id)
	if domain.IsNotFound(err) {
		booking, err = svc.FindByProviderID(id)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	blanks := services.BlankService{
		Provider:  gateway,
		FontDir:   appEnv.FontDir,
		RequestID: middleware.GetRequestID(c),
	}
	blank, err := blanks.GetBlank(c.Request.Context(), booking)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if blank.Kind == models.BlankPDF {
		c.Header("Content-Disposition", `inline; filename="booking-`+booking.ID+`.pdf"`)
		c.Data(http.StatusOK, "application/pdf", blank.PDF)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"blank":   blank.Data,
		"booking": booking,
	})
}

// GET /bookings (token required; owner-scoped)
func ListBookings(c *gin.Context) {
	owner := middleware.GetUserEmail(c)
	svc := bookingService(c)
	bookings, err := svc.ListByOwner(owner)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
