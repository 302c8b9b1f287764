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

// SubscriptionController handles lesson package endpoints
type SubscriptionController struct {
	subscriptionService *services.SubscriptionService
}

// NewSubscriptionController creates a new SubscriptionController
func NewSubscriptionController(subscriptionService *services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{subscriptionService: subscriptionService}
}

// Create adds a subscription for a linked (student, teacher) pair
// @Summary Create subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSubscriptionRequest true "Subscription information"
// @Success 201 {object} dto.APIResponse{data=models.Subscription} "Subscription created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student and teacher are not linked"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions [post]
func (c *SubscriptionController) Create(ctx *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	sub, err := c.subscriptionService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      sub,
		Timestamp: time.Now(),
	})
}

// GetByID retrieves a subscription
// @Summary Get subscription by ID
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} dto.APIResponse{data=models.Subscription} "Subscription retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid subscription ID"
// @Failure 404 {object} dto.ErrorResponse "Subscription not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions/{id} [get]
func (c *SubscriptionController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	sub, err := c.subscriptionService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sub,
		Timestamp: time.Now(),
	})
}

// GetForStudent lists a student's subscriptions
// @Summary List a student's subscriptions
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Subscription} "Subscriptions retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{studentId}/subscriptions [get]
func (c *SubscriptionController) GetForStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	subs, err := c.subscriptionService.GetForStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      subs,
		Timestamp: time.Now(),
	})
}

// GetForTeacher lists a teacher's subscriptions
// @Summary List a teacher's subscriptions
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param teacherId path int true "Teacher user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Subscription} "Subscriptions retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid teacher ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers/{teacherId}/subscriptions [get]
func (c *SubscriptionController) GetForTeacher(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}

	subs, err := c.subscriptionService.GetForTeacher(ctx, teacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      subs,
		Timestamp: time.Now(),
	})
}

// GetActive lists the non-archived subscriptions of a (student, teacher) pair
// @Summary List active subscriptions for a pair
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student user ID"
// @Param teacherId path int true "Teacher user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Subscription} "Subscriptions retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid IDs"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions/active/{studentId}/{teacherId} [get]
func (c *SubscriptionController) GetActive(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	teacherID, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}

	subs, err := c.subscriptionService.GetActive(ctx, studentID, teacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      subs,
		Timestamp: time.Now(),
	})
}

// Update applies a partial subscription update
// @Summary Update subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Param request body dto.UpdateSubscriptionRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Subscription} "Subscription updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Subscription not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions/{id} [put]
func (c *SubscriptionController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	sub, err := c.subscriptionService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sub,
		Timestamp: time.Now(),
	})
}

// Archive retires a subscription
// @Summary Archive subscription
// @Description Marks a subscription archived. Only the owning teacher or an administrator may archive; a second call is a no-op success.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Subscription archived"
// @Failure 400 {object} dto.ErrorResponse "Invalid subscription ID"
// @Failure 403 {object} dto.ErrorResponse "Caller may not archive this subscription"
// @Failure 404 {object} dto.ErrorResponse "Subscription not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions/{id}/archive [post]
func (c *SubscriptionController) Archive(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	claims, _ := middleware.GetClaims(ctx)
	callerIsAdmin := claims != nil && claims.HasRole(models.RoleAdministrator)

	if err := c.subscriptionService.Archive(ctx, callerID, callerIsAdmin, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Subscription archived"},
		Timestamp: time.Now(),
	})
}

// Delete removes a subscription
// @Summary Delete subscription
// @Description Removes a subscription; lessons that referenced it survive with the link cleared
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Subscription deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid subscription ID"
// @Failure 404 {object} dto.ErrorResponse "Subscription not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions/{id} [delete]
func (c *SubscriptionController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.subscriptionService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Subscription deleted"},
		Timestamp: time.Now(),
	})
}
