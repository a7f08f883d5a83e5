package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/flori92/lokali-platform-sub000/internal/app/commands"
	"github.com/flori92/lokali-platform-sub000/internal/app/dto"
	reviewsapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/reviews"
	"github.com/flori92/lokali-platform-sub000/internal/app/queries"
)

type ReviewHandler struct {
	Queries  queries.Bus
	Commands commands.Bus
}

type submitReviewRequest struct {
	AuthorID string `json:"author_id"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
}

func (h ReviewHandler) Submit(c *gin.Context) {
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := reviewsapp.SubmitReviewCommand{
		CommandID: generateCommandID(),
		BookingID: c.Param("id"),
		AuthorID:  req.AuthorID,
		Rating:    req.Rating,
		Text:      req.Text,
	}
	result, err := commands.Dispatch[reviewsapp.SubmitReviewCommand, *reviewsapp.SubmitReviewResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ReviewHandler) List(c *gin.Context) {
	query := reviewsapp.ListReviewsQuery{
		PropertyID: c.Param("id"),
		Limit:      parseIntDefault(c.Query("limit"), 0),
		Offset:     parseIntDefault(c.Query("offset"), 0),
	}
	result, err := queries.Ask[reviewsapp.ListReviewsQuery, dto.ReviewCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ ReviewHTTP = ReviewHandler{}
