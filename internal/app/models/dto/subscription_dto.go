package dto

// CreateSubscriptionRequest represents a new lesson package for one
// (student, teacher) pair
type CreateSubscriptionRequest struct {
	TotalLessons int    `json:"totalLessons" binding:"required,min=1"`
	StartDate    string `json:"startDate" binding:"required" example:"2026-09-01"`
	EndDate      string `json:"endDate" binding:"required" example:"2026-12-01"`
	StudentID    int64  `json:"studentId" binding:"required,min=1"`
	TeacherID    int64  `json:"teacherId" binding:"required,min=1"`
}

// UpdateSubscriptionRequest represents a partial subscription update. The
// (student, teacher) pair and start date are immutable.
type UpdateSubscriptionRequest struct {
	TotalLessons *int    `json:"totalLessons,omitempty" binding:"omitempty,min=1"`
	EndDate      *string `json:"endDate,omitempty" example:"2026-12-01"`
}
