package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/flori92/lokali-platform-sub000/internal/app/dto"
	availabilityapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/availability"
	"github.com/flori92/lokali-platform-sub000/internal/app/queries"
)

type AvailabilityHandler struct {
	Queries queries.Bus
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	query := availabilityapp.GetCalendarQuery{PropertyID: c.Param("id")}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.Calendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) Check(c *gin.Context) {
	checkIn, err := parseDay(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDay(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query := availabilityapp.CheckRangeQuery{
		PropertyID: c.Param("id"),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}
	result, err := queries.Ask[availabilityapp.CheckRangeQuery, dto.RangeCheck](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
