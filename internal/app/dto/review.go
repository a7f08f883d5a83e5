package dto

import (
	"time"

	"github.com/flori92/lokali-platform-sub000/internal/domain/reviews"
)

type ReviewSummary struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	AuthorID   string    `json:"author_id"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewCollection struct {
	Items []ReviewSummary `json:"items"`
}

func MapReviewSummary(r *reviews.Review) ReviewSummary {
	return ReviewSummary{
		ID:         string(r.ID),
		PropertyID: string(r.PropertyID),
		AuthorID:   r.AuthorID,
		Rating:     r.Rating,
		Text:       r.Text,
		CreatedAt:  r.CreatedAt,
	}
}
