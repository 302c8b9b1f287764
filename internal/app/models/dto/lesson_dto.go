package dto

import "time"

// CreateLessonRequest represents a new scheduled session
type CreateLessonRequest struct {
	LessonDateTime time.Time `json:"lessonDateTime" binding:"required"`
	Duration       int       `json:"duration" binding:"required,min=1" example:"60"`
	OnlineCallURL  *string   `json:"onlineCallUrl,omitempty"`
	TeacherID      int64     `json:"teacherId" binding:"required,min=1"`
	StudentID      int64     `json:"studentId" binding:"required,min=1"`
	SubscriptionID *int64    `json:"subscriptionId,omitempty" binding:"omitempty,min=1"`
}

// UpdateLessonRequest represents a partial lesson update. Participants and
// status are not changed here.
type UpdateLessonRequest struct {
	LessonDateTime *time.Time `json:"lessonDateTime,omitempty"`
	Duration       *int       `json:"duration,omitempty" binding:"omitempty,min=1"`
	OnlineCallURL  *string    `json:"onlineCallUrl,omitempty"`
	SubscriptionID *int64     `json:"subscriptionId,omitempty" binding:"omitempty,min=1"`
}

// SetLessonStatusRequest overwrites a lesson's status without lifecycle checks
type SetLessonStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled completed cancelled_in_time missed"`
}

// FinalizeLessonRequest moves a scheduled lesson to a terminal status
type FinalizeLessonRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled_in_time missed"`
}

// UpcomingLessonsQuery selects whose upcoming lessons to fetch
type UpcomingLessonsQuery struct {
	Role  string `form:"role" binding:"required,oneof=student teacher"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
