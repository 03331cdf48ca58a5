package dto

import (
	"time"

	"car-blog/models"
)

// BlogDTO exposes a blog to API consumers. IDs are hex strings.
type BlogDTO struct {
	ID          string    `json:"id" example:"665f1c2e9b1e8a3d4c5b6a70"`
	Owner       string    `json:"owner" example:"665f1c2e9b1e8a3d4c5b6a71"`
	Title       string    `json:"title" example:"E30 325i"`
	Description string    `json:"description" example:"Garage kept, original paint"`
	Model       string    `json:"model" example:"BMW"`
	Year        int       `json:"year" example:"1989"`
	Image       string    `json:"image,omitempty" example:"uploads/1718000000000-e30.jpg"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewBlogDTO(b models.Blog) BlogDTO {
	return BlogDTO{
		ID:          b.ID.Hex(),
		Owner:       b.Owner.Hex(),
		Title:       b.Title,
		Description: b.Description,
		Model:       b.Model,
		Year:        b.Year,
		Image:       b.Image,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func NewBlogDTOs(items []models.Blog) []BlogDTO {
	out := make([]BlogDTO, 0, len(items))
	for _, b := range items {
		out = append(out, NewBlogDTO(b))
	}
	return out
}

// BlogRequest is the body of create and update calls, either multipart form
// fields or JSON.
type BlogRequest struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Model       string `form:"model" json:"model"`
	Year        int    `form:"year" json:"year"`
}
