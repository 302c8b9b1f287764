package models

import "time"

// Subscription defines a purchased lesson package based on the 'subscriptions'
// table. A subscription belongs to one (student, teacher) pair; its lessons
// must reference the same pair. Archiving is one-way: archived subscriptions
// are kept for history and excluded from active queries.
type Subscription struct {
	ID           int64     `json:"id" db:"id"`
	TotalLessons int       `json:"totalLessons" db:"total_lessons"`
	StartDate    time.Time `json:"startDate" db:"start_date"`
	EndDate      time.Time `json:"endDate" db:"end_date"`
	InArchive    bool      `json:"inArchive" db:"in_archive"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	TeacherID    int64     `json:"teacherId" db:"teacher_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
