package dto

// CreateDisciplineRequest represents a new subject offering
type CreateDisciplineRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
}

// UpdateDisciplineRequest represents a partial discipline update
type UpdateDisciplineRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
