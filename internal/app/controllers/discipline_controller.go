package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vmerk/tutorium/internal/app/models/dto"
	"github.com/vmerk/tutorium/internal/app/services"
	"github.com/vmerk/tutorium/internal/middleware"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
)

// DisciplineController handles subject offering endpoints
type DisciplineController struct {
	disciplineService *services.DisciplineService
}

// NewDisciplineController creates a new DisciplineController
func NewDisciplineController(disciplineService *services.DisciplineService) *DisciplineController {
	return &DisciplineController{disciplineService: disciplineService}
}

// requireCaller reads the authenticated user ID or aborts
func requireCaller(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return 0, false
	}
	return userID, true
}

// Create adds a discipline owned by the calling administrator
// @Summary Create discipline
// @Tags disciplines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDisciplineRequest true "Discipline information"
// @Success 201 {object} dto.APIResponse{data=models.Discipline} "Discipline created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /disciplines [post]
func (c *DisciplineController) Create(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.CreateDisciplineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	d, err := c.disciplineService.Create(ctx, callerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      d,
		Timestamp: time.Now(),
	})
}

// GetByID retrieves a discipline
// @Summary Get discipline by ID
// @Tags disciplines
// @Produce json
// @Param id path int true "Discipline ID"
// @Success 200 {object} dto.APIResponse{data=models.Discipline} "Discipline retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid discipline ID"
// @Failure 404 {object} dto.ErrorResponse "Discipline not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /disciplines/{id} [get]
func (c *DisciplineController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	d, err := c.disciplineService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      d,
		Timestamp: time.Now(),
	})
}

// GetAll retrieves all disciplines
// @Summary List disciplines
// @Tags disciplines
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Discipline} "Disciplines retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /disciplines [get]
func (c *DisciplineController) GetAll(ctx *gin.Context) {
	disciplines, err := c.disciplineService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      disciplines,
		Timestamp: time.Now(),
	})
}

// Update applies a partial discipline update. Only the owning administrator
// may update.
// @Summary Update discipline
// @Tags disciplines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discipline ID"
// @Param request body dto.UpdateDisciplineRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Discipline} "Discipline updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own this discipline"
// @Failure 404 {object} dto.ErrorResponse "Discipline not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /disciplines/{id} [put]
func (c *DisciplineController) Update(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDisciplineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.checkOwnership(ctx, id, callerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	d, err := c.disciplineService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      d,
		Timestamp: time.Now(),
	})
}

// Delete removes a discipline. Only the owning administrator may delete.
// @Summary Delete discipline
// @Tags disciplines
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discipline ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Discipline deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid discipline ID"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own this discipline"
// @Failure 404 {object} dto.ErrorResponse "Discipline not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /disciplines/{id} [delete]
func (c *DisciplineController) Delete(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.checkOwnership(ctx, id, callerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.disciplineService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Discipline deleted"},
		Timestamp: time.Now(),
	})
}

// checkOwnership verifies the caller administers the discipline
func (c *DisciplineController) checkOwnership(ctx *gin.Context, disciplineID, callerID int64) error {
	d, err := c.disciplineService.GetByID(ctx, disciplineID)
	if err != nil {
		return err
	}
	if d.AdministratorID != callerID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// AddTeacher links a teacher to a discipline
// @Summary Link teacher to discipline
// @Tags disciplines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddTeacherDisciplineRequest true "Teacher and discipline IDs"
// @Success 201 {object} dto.APIResponse{data=models.TeacherDisciplineAssociation} "Link created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Teacher or discipline not found"
// @Failure 409 {object} dto.ErrorResponse "Link already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /disciplines/teachers [post]
func (c *DisciplineController) AddTeacher(ctx *gin.Context) {
	var req dto.AddTeacherDisciplineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	assoc, err := c.disciplineService.AddTeacher(ctx, req.TeacherID, req.DisciplineID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      assoc,
		Timestamp: time.Now(),
	})
}

// RemoveTeacher unlinks a teacher from a discipline
// @Summary Unlink teacher from discipline
// @Tags disciplines
// @Produce json
// @Security BearerAuth
// @Param teacherId path int true "Teacher user ID"
// @Param disciplineId path int true "Discipline ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Link removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid IDs"
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /disciplines/{disciplineId}/teachers/{teacherId} [delete]
func (c *DisciplineController) RemoveTeacher(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}
	disciplineID, ok := parseIDParam(ctx, "disciplineId")
	if !ok {
		return
	}

	if err := c.disciplineService.RemoveTeacher(ctx, teacherID, disciplineID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Teacher unlinked from discipline"},
		Timestamp: time.Now(),
	})
}

// TeachersFor lists the teachers linked to a discipline
// @Summary List discipline teachers
// @Tags disciplines
// @Produce json
// @Param id path int true "Discipline ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Teacher} "Teachers retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid discipline ID"
// @Failure 404 {object} dto.ErrorResponse "Discipline not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /disciplines/{id}/teachers [get]
func (c *DisciplineController) TeachersFor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	teachers, err := c.disciplineService.TeachersFor(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      teachers,
		Timestamp: time.Now(),
	})
}

// TeacherDisciplines lists the disciplines a teacher is linked to
// @Summary List a teacher's disciplines
// @Tags disciplines
// @Produce json
// @Security BearerAuth
// @Param teacherId path int true "Teacher user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Discipline} "Disciplines retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid teacher ID"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers/{teacherId}/disciplines [get]
func (c *DisciplineController) TeacherDisciplines(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}

	disciplines, err := c.disciplineService.GetForTeacher(ctx, teacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      disciplines,
		Timestamp: time.Now(),
	})
}
