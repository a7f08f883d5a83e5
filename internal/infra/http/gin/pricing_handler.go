package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/flori92/lokali-platform-sub000/internal/app/dto"
	pricingapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/pricing"
	"github.com/flori92/lokali-platform-sub000/internal/app/queries"
)

type PricingHandler struct {
	Queries queries.Bus
}

// Quote prices a prospective stay without reserving anything.
func (h PricingHandler) Quote(c *gin.Context) {
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
	query := pricingapp.GetQuoteQuery{
		PropertyID: c.Param("id"),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}
	result, err := queries.Ask[pricingapp.GetQuoteQuery, dto.PriceQuote](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PricingHTTP = PricingHandler{}
