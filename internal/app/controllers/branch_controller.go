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

// BranchController handles office location and classroom endpoints
type BranchController struct {
	branchService *services.BranchService
}

// NewBranchController creates a new BranchController
func NewBranchController(branchService *services.BranchService) *BranchController {
	return &BranchController{branchService: branchService}
}

// CreateBranch adds a branch owned by the calling administrator
// @Summary Create branch
// @Tags branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBranchRequest true "Branch information"
// @Success 201 {object} dto.APIResponse{data=models.Branch} "Branch created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /branches [post]
func (c *BranchController) CreateBranch(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.CreateBranchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	b, err := c.branchService.CreateBranch(ctx, callerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      b,
		Timestamp: time.Now(),
	})
}

// GetBranch retrieves a branch
// @Summary Get branch by ID
// @Tags branches
// @Produce json
// @Param id path int true "Branch ID"
// @Success 200 {object} dto.APIResponse{data=models.Branch} "Branch retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid branch ID"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /branches/{id} [get]
func (c *BranchController) GetBranch(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	b, err := c.branchService.GetBranch(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      b,
		Timestamp: time.Now(),
	})
}

// GetAllBranches retrieves all branches
// @Summary List branches
// @Tags branches
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Branch} "Branches retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /branches [get]
func (c *BranchController) GetAllBranches(ctx *gin.Context) {
	branches, err := c.branchService.GetAllBranches(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      branches,
		Timestamp: time.Now(),
	})
}

// UpdateBranch applies a partial branch update. Only the owning administrator
// may update.
// @Summary Update branch
// @Tags branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Param request body dto.UpdateBranchRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Branch} "Branch updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own this branch"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /branches/{id} [put]
func (c *BranchController) UpdateBranch(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBranchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.checkBranchOwnership(ctx, id, callerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	b, err := c.branchService.UpdateBranch(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      b,
		Timestamp: time.Now(),
	})
}

// DeleteBranch removes a branch and its classrooms. Only the owning
// administrator may delete.
// @Summary Delete branch
// @Tags branches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Branch deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid branch ID"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own this branch"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /branches/{id} [delete]
func (c *BranchController) DeleteBranch(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.checkBranchOwnership(ctx, id, callerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.branchService.DeleteBranch(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Branch deleted"},
		Timestamp: time.Now(),
	})
}

func (c *BranchController) checkBranchOwnership(ctx *gin.Context, branchID, callerID int64) error {
	b, err := c.branchService.GetBranch(ctx, branchID)
	if err != nil {
		return err
	}
	if b.AdministratorID != callerID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// CreateClassroom adds a room inside a branch
// @Summary Create classroom
// @Tags classrooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassroomRequest true "Classroom information"
// @Success 201 {object} dto.APIResponse{data=models.Classroom} "Classroom created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classrooms [post]
func (c *BranchController) CreateClassroom(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.CreateClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	room, err := c.branchService.CreateClassroom(ctx, callerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      room,
		Timestamp: time.Now(),
	})
}

// GetClassroom retrieves a classroom
// @Summary Get classroom by ID
// @Tags classrooms
// @Produce json
// @Param id path int true "Classroom ID"
// @Success 200 {object} dto.APIResponse{data=models.Classroom} "Classroom retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid classroom ID"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classrooms/{id} [get]
func (c *BranchController) GetClassroom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	room, err := c.branchService.GetClassroom(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      room,
		Timestamp: time.Now(),
	})
}

// GetBranchClassrooms lists the rooms of a branch
// @Summary List branch classrooms
// @Tags classrooms
// @Produce json
// @Param id path int true "Branch ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Classroom} "Classrooms retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid branch ID"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /branches/{id}/classrooms [get]
func (c *BranchController) GetBranchClassrooms(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	rooms, err := c.branchService.GetClassroomsByBranch(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      rooms,
		Timestamp: time.Now(),
	})
}

// UpdateClassroom applies a partial classroom update. Only the owning
// administrator may update.
// @Summary Update classroom
// @Tags classrooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Classroom ID"
// @Param request body dto.UpdateClassroomRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Classroom} "Classroom updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own this classroom"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classrooms/{id} [put]
func (c *BranchController) UpdateClassroom(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.checkClassroomOwnership(ctx, id, callerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	room, err := c.branchService.UpdateClassroom(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      room,
		Timestamp: time.Now(),
	})
}

// DeleteClassroom removes a classroom. Only the owning administrator may
// delete.
// @Summary Delete classroom
// @Tags classrooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Classroom ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Classroom deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid classroom ID"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own this classroom"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classrooms/{id} [delete]
func (c *BranchController) DeleteClassroom(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.checkClassroomOwnership(ctx, id, callerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.branchService.DeleteClassroom(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Classroom deleted"},
		Timestamp: time.Now(),
	})
}

func (c *BranchController) checkClassroomOwnership(ctx *gin.Context, classroomID, callerID int64) error {
	room, err := c.branchService.GetClassroom(ctx, classroomID)
	if err != nil {
		return err
	}
	if room.AdministratorID != callerID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
