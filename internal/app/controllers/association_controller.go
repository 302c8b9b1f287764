package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vmerk/tutorium/internal/app/models/dto"
	"github.com/vmerk/tutorium/internal/app/services"
	"github.com/vmerk/tutorium/internal/middleware"
)

// AssociationController handles student-teacher link endpoints
type AssociationController struct {
	associationService *services.AssociationService
}

// NewAssociationController creates a new AssociationController
func NewAssociationController(associationService *services.AssociationService) *AssociationController {
	return &AssociationController{associationService: associationService}
}

// Create links one student to one teacher
// @Summary Create association
// @Tags associations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAssociationRequest true "Student and teacher IDs"
// @Success 201 {object} dto.APIResponse{data=models.StudentTeacherAssociation} "Association created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student or teacher not found"
// @Failure 409 {object} dto.ErrorResponse "Association already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /associations [post]
func (c *AssociationController) Create(ctx *gin.Context) {
	var req dto.CreateAssociationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	assoc, err := c.associationService.Create(ctx, req.StudentID, req.TeacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      assoc,
		Timestamp: time.Now(),
	})
}

// BulkCreate links every listed student to every listed teacher
// @Summary Bulk create associations
// @Description Creates the cross product of the student and teacher lists, skipping pairs that already exist
// @Tags associations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkCreateAssociationsRequest true "Student and teacher ID lists"
// @Success 201 {object} dto.APIResponse{data=dto.BulkCreateAssociationsResponse} "Associations created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "A listed user lacks the required role"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /associations/bulk [post]
func (c *AssociationController) BulkCreate(ctx *gin.Context) {
	var req dto.BulkCreateAssociationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	created, skipped, err := c.associationService.BulkCreate(ctx, req.StudentIDs, req.TeacherIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pairs := make([]dto.AssociationPairResponse, 0, len(created))
	for _, p := range created {
		pairs = append(pairs, dto.AssociationPairResponse{StudentID: p.StudentID, TeacherID: p.TeacherID})
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.BulkCreateAssociationsResponse{
			Created: pairs,
			Skipped: skipped,
		},
		Timestamp: time.Now(),
	})
}

// GetAll retrieves every student-teacher link
// @Summary List associations
// @Tags associations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.StudentTeacherAssociation} "Associations retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /associations [get]
func (c *AssociationController) GetAll(ctx *gin.Context) {
	associations, err := c.associationService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      associations,
		Timestamp: time.Now(),
	})
}

// Delete removes a student-teacher link
// @Summary Delete association
// @Tags associations
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student user ID"
// @Param teacherId path int true "Teacher user ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Association deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid IDs"
// @Failure 404 {object} dto.ErrorResponse "Association not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /associations/{studentId}/{teacherId} [delete]
func (c *AssociationController) Delete(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	teacherID, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}

	if err := c.associationService.Delete(ctx, studentID, teacherID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Association deleted"},
		Timestamp: time.Now(),
	})
}

// TeachersForStudent lists the teachers linked to a student
// @Summary List a student's teachers
// @Tags associations
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Teacher} "Teachers retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{studentId}/teachers [get]
func (c *AssociationController) TeachersForStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	teachers, err := c.associationService.TeachersForStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      teachers,
		Timestamp: time.Now(),
	})
}

// StudentsForTeacher lists the students linked to a teacher
// @Summary List a teacher's students
// @Tags associations
// @Produce json
// @Security BearerAuth
// @Param teacherId path int true "Teacher user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid teacher ID"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers/{teacherId}/students [get]
func (c *AssociationController) StudentsForTeacher(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}

	students, err := c.associationService.StudentsForTeacher(ctx, teacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}
