package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"github.com/flori92/lokali-platform-sub000/internal/app/commands"
	"github.com/flori92/lokali-platform-sub000/internal/app/dto"
	propertiesapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/properties"
	"github.com/flori92/lokali-platform-sub000/internal/app/queries"
)

type PropertyHandler struct {
	Queries  queries.Bus
	Commands commands.Bus
}

func (h PropertyHandler) Catalog(c *gin.Context) {
	query := propertiesapp.SearchCatalogQuery{
		City:     c.Query("city"),
		District: c.Query("district"),
		Types:    c.QueryArray("type"),
		Guests:   parseIntDefault(c.Query("guests"), 0),
		PriceMin: parseInt64Default(c.Query("price_min"), 0),
		PriceMax: parseInt64Default(c.Query("price_max"), 0),
		Sort:     c.Query("sort"),
		Limit:    parseIntDefault(c.Query("limit"), 0),
		Offset:   parseIntDefault(c.Query("offset"), 0),
	}
	result, err := queries.Ask[propertiesapp.SearchCatalogQuery, dto.PropertyCatalog](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PropertyHandler) Overview(c *gin.Context) {
	query := propertiesapp.GetOverviewQuery{PropertyID: c.Param("id")}
	result, err := queries.Ask[propertiesapp.GetOverviewQuery, dto.PropertyOverview](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type blockCalendarRequest struct {
	OwnerID string    `json:"owner_id"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
	Reason  string    `json:"reason"`
}

func (h PropertyHandler) Block(c *gin.Context) {
	var req blockCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := propertiesapp.BlockCalendarCommand{
		CommandID:  generateCommandID(),
		PropertyID: c.Param("id"),
		OwnerID:    req.OwnerID,
		From:       req.From,
		To:         req.To,
		Reason:     req.Reason,
	}
	result, err := commands.Dispatch[propertiesapp.BlockCalendarCommand, *propertiesapp.BlockCalendarResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

var _ PropertyHTTP = PropertyHandler{}
