package models

// StudentTeacherAssociation is a many-to-many link row between a student and a
// teacher. The composite (student_id, teacher_id) key is the whole row.
type StudentTeacherAssociation struct {
	StudentID int64 `json:"studentId" db:"student_id"`
	TeacherID int64 `json:"teacherId" db:"teacher_id"`
}

// TeacherDisciplineAssociation links a teacher to a discipline they teach.
type TeacherDisciplineAssociation struct {
	TeacherID    int64 `json:"teacherId" db:"teacher_id"`
	DisciplineID int64 `json:"disciplineId" db:"discipline_id"`
}

// AssociationPair is a created (student, teacher) pair returned by bulk
// association creation.
type AssociationPair struct {
	StudentID int64 `json:"studentId"`
	TeacherID int64 `json:"teacherId"`
}
