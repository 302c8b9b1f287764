package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/models/dto"
	"github.com/vmerk/tutorium/internal/app/services"
	"github.com/vmerk/tutorium/internal/middleware"
)

// LessonController handles scheduled session endpoints
type LessonController struct {
	lessonService *services.LessonService
}

// NewLessonController creates a new LessonController
func NewLessonController(lessonService *services.LessonService) *LessonController {
	return &LessonController{lessonService: lessonService}
}

// Create schedules a lesson
// @Summary Create lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLessonRequest true "Lesson information"
// @Success 201 {object} dto.APIResponse{data=models.Lesson} "Lesson created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student and teacher are not linked"
// @Failure 422 {object} dto.ErrorResponse "Subscription belongs to a different pair"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	var req dto.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	l, err := c.lessonService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      l,
		Timestamp: time.Now(),
	})
}

// GetByID retrieves a lesson
// @Summary Get lesson by ID
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=models.Lesson} "Lesson retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid lesson ID"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{id} [get]
func (c *LessonController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	l, err := c.lessonService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      l,
		Timestamp: time.Now(),
	})
}

// GetUpcoming lists the caller's next scheduled lessons
// @Summary List upcoming lessons
// @Description Lists the caller's scheduled lessons from now on, soonest first. The role query picks which side of the lesson the caller is on.
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param role query string true "student or teacher"
// @Param limit query int false "Maximum lessons to return" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Lesson} "Lessons retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/upcoming [get]
func (c *LessonController) GetUpcoming(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var query dto.UpcomingLessonsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	lessons, err := c.lessonService.GetUpcoming(ctx, callerID, models.Role(query.Role), query.Limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      lessons,
		Timestamp: time.Now(),
	})
}

// GetForStudent lists a student's lessons
// @Summary List a student's lessons
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Lesson} "Lessons retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{studentId}/lessons [get]
func (c *LessonController) GetForStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	lessons, err := c.lessonService.GetForStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      lessons,
		Timestamp: time.Now(),
	})
}

// GetForTeacher lists a teacher's lessons
// @Summary List a teacher's lessons
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param teacherId path int true "Teacher user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Lesson} "Lessons retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid teacher ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers/{teacherId}/lessons [get]
func (c *LessonController) GetForTeacher(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}

	lessons, err := c.lessonService.GetForTeacher(ctx, teacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      lessons,
		Timestamp: time.Now(),
	})
}

// GetBySubscription lists the lessons booked against a subscription
// @Summary List subscription lessons
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Lesson} "Lessons retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid subscription ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions/{id}/lessons [get]
func (c *LessonController) GetBySubscription(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	lessons, err := c.lessonService.GetBySubscription(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      lessons,
		Timestamp: time.Now(),
	})
}

// Update applies a partial lesson update
// @Summary Update lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param request body dto.UpdateLessonRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Lesson} "Lesson updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 422 {object} dto.ErrorResponse "Subscription belongs to a different pair"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{id} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	l, err := c.lessonService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      l,
		Timestamp: time.Now(),
	})
}

// Finalize moves a scheduled lesson into a terminal status
// @Summary Finalize lesson
// @Description Transitions a scheduled lesson to completed, cancelled_in_time or missed. Lessons already finalized are rejected.
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param request body dto.FinalizeLessonRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.Lesson} "Lesson finalized"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 409 {object} dto.ErrorResponse "Lesson is not scheduled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{id}/finalize [post]
func (c *LessonController) Finalize(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.FinalizeLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	l, err := c.lessonService.Finalize(ctx, id, models.LessonStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      l,
		Timestamp: time.Now(),
	})
}

// SetStatus overwrites a lesson's status without lifecycle checks
// @Summary Set lesson status
// @Description Administrator correction path: overwrites the status with no transition checks, including moving finalized lessons back to scheduled
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param request body dto.SetLessonStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Lesson} "Status set"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{id}/status [put]
func (c *LessonController) SetStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetLessonStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	l, err := c.lessonService.SetStatus(ctx, id, models.LessonStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      l,
		Timestamp: time.Now(),
	})
}

// Delete removes a lesson
// @Summary Delete lesson
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Lesson deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid lesson ID"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.lessonService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Lesson deleted"},
		Timestamp: time.Now(),
	})
}
