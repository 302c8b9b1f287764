package models

import "time"

// LessonStatus enumerates the lesson lifecycle states. A lesson starts as
// scheduled; the three remaining states are terminal.
type LessonStatus string

const (
	LessonScheduled       LessonStatus = "scheduled"
	LessonCompleted       LessonStatus = "completed"
	LessonCancelledInTime LessonStatus = "cancelled_in_time"
	LessonMissed          LessonStatus = "missed"
)

// Valid reports whether the status is one of the known lesson states.
func (s LessonStatus) Valid() bool {
	switch s {
	case LessonScheduled, LessonCompleted, LessonCancelledInTime, LessonMissed:
		return true
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s LessonStatus) Terminal() bool {
	return s == LessonCompleted || s == LessonCancelledInTime || s == LessonMissed
}

// CanTransitionTo reports whether the state machine permits moving from s to
// target. Only scheduled has outgoing edges.
func (s LessonStatus) CanTransitionTo(target LessonStatus) bool {
	return s == LessonScheduled && target.Terminal()
}

// Lesson defines a scheduled session based on the 'lessons' table. A lesson
// belongs to one teacher and one student, and optionally to a subscription;
// when linked, the subscription's (student, teacher) pair must match.
type Lesson struct {
	ID             int64        `json:"id" db:"id"`
	LessonDateTime time.Time    `json:"lessonDateTime" db:"lesson_date_time"`
	Duration       int          `json:"duration" db:"duration" example:"60"`
	Status         LessonStatus `json:"status" db:"status"`
	OnlineCallURL  *string      `json:"onlineCallUrl,omitempty" db:"online_call_url"`
	TeacherID      int64        `json:"teacherId" db:"teacher_id"`
	StudentID      int64        `json:"studentId" db:"student_id"`
	SubscriptionID *int64       `json:"subscriptionId,omitempty" db:"subscription_id"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
}
