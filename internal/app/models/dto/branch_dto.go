package dto

// CreateBranchRequest represents a new office location
type CreateBranchRequest struct {
	Address      *string `json:"address,omitempty"`
	WorkingStart string  `json:"workingStart" binding:"required" example:"09:00:00"`
	WorkingEnd   string  `json:"workingEnd" binding:"required" example:"20:00:00"`
	Description  *string `json:"description,omitempty"`
	PhotoURL     *string `json:"photoUrl,omitempty"`
}

// UpdateBranchRequest represents a partial branch update
type UpdateBranchRequest struct {
	Address      *string `json:"address,omitempty"`
	WorkingStart *string `json:"workingStart,omitempty" example:"09:00:00"`
	WorkingEnd   *string `json:"workingEnd,omitempty" example:"20:00:00"`
	Description  *string `json:"description,omitempty"`
	PhotoURL     *string `json:"photoUrl,omitempty"`
}

// CreateClassroomRequest represents a new room inside a branch
type CreateClassroomRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	BranchID    int64   `json:"branchId" binding:"required,min=1"`
}

// UpdateClassroomRequest represents a partial classroom update
type UpdateClassroomRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	BranchID    *int64  `json:"branchId,omitempty" binding:"omitempty,min=1"`
}
