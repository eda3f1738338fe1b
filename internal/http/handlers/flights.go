package handlers

import (
	"net/http"

	"aviatickets/internal/http/middleware"
	"aviatickets/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /flights/search?from=LED&to=SVO&date=2025-12-20
func SearchFlights(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	date := c.Query("date")
	if from == "" || to == "" || date == "" {
		RespondError(c, http.StatusBadRequest, "from, to and date are required", nil)
		return
	}

	svc := services.FlightsService{
		Provider:  gateway,
		RequestID: middleware.GetRequestID(c),
	}
	body := svc.Search(c.Request.Context(), from, to, date)
	c.Data(http.StatusOK, "application/json", body)
}
