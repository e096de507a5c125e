package dto

import (
	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
)

// ReciterResponse represents a reciter in API responses.
type ReciterResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Style string `json:"style"`
}

// ListRecitersResponse represents the reciter catalogue in API responses.
type ListRecitersResponse struct {
	Data      []ReciterResponse `json:"data"`
	DefaultID int               `json:"default_id"`
}

// MapRecitersToListResponse converts the reciter catalogue to a list API response.
func MapRecitersToListResponse(reciters []contentDomain.Reciter) ListRecitersResponse {
	responses := make([]ReciterResponse, 0, len(reciters))
	for _, reciter := range reciters {
		responses = append(responses, ReciterResponse{
			ID:    reciter.ID,
			Name:  reciter.Name,
			Style: reciter.Style,
		})
	}
	return ListRecitersResponse{
		Data:      responses,
		DefaultID: contentDomain.DefaultReciterID,
	}
}
