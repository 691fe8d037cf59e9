package dto

// CreateEditionRequest represents data for creating a course edition
type CreateEditionRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"2025/2026 Winter"`
}

// UpdateEditionRequest represents data for renaming a course edition
type UpdateEditionRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"2025/2026 Summer"`
}

// EditionResponse represents a course edition
type EditionResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"2025/2026 Winter"`
}
