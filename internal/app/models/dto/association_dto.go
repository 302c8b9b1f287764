package dto

// CreateAssociationRequest links one student to one teacher
type CreateAssociationRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1"`
	TeacherID int64 `json:"teacherId" binding:"required,min=1"`
}

// BulkCreateAssociationsRequest links every listed student to every listed
// teacher. Pairs that already exist are skipped.
type BulkCreateAssociationsRequest struct {
	StudentIDs []int64 `json:"studentIds" binding:"required,min=1,dive,min=1"`
	TeacherIDs []int64 `json:"teacherIds" binding:"required,min=1,dive,min=1"`
}

// AssociationPairResponse represents one created student-teacher link
type AssociationPairResponse struct {
	StudentID int64 `json:"studentId"`
	TeacherID int64 `json:"teacherId"`
}

// BulkCreateAssociationsResponse lists the pairs actually created
type BulkCreateAssociationsResponse struct {
	Created []AssociationPairResponse `json:"created"`
	Skipped int                       `json:"skipped"`
}

// AddTeacherDisciplineRequest links a teacher to a discipline
type AddTeacherDisciplineRequest struct {
	TeacherID    int64 `json:"teacherId" binding:"required,min=1"`
	DisciplineID int64 `json:"disciplineId" binding:"required,min=1"`
}
