package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"splitly/internal/models/request_models"
	"splitly/internal/services"
	"splitly/pkg/utils"
)

type GroupController struct {
	groupService services.GroupServiceInterface
}

func NewGroupController(groupService services.GroupServiceInterface) *GroupController {
	return &GroupController{groupService: groupService}
}

// CreateGroup godoc
// @Summary Create a group
// @Description Create a group with the caller as admin and first member
// @Tags Groups
// @Accept json
// @Produce json
// @Param request body request_models.CreateGroupRequest true "Group payload"
// @Success 201 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /groups [post]
func (g *GroupController) CreateGroup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	group, err := g.groupService.CreateGroup(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, gin.H{"group": group}, "Group created successfully")
}

// ListGroups godoc
// @Summary List the caller's groups
// @Tags Groups
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /groups [get]
func (g *GroupController) ListGroups(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	groups, err := g.groupService.ListGroups(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"groups": groups}, "")
}

// GetGroup godoc
// @Summary Get a single group
// @Tags Groups
// @Produce json
// @Param id path string true "Group id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /groups/{id} [get]
func (g *GroupController) GetGroup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	group, err := g.groupService.GetGroup(c.Request.Context(), userID, groupID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"group": group}, "")
}

// UpdateGroup godoc
// @Summary Update a group's name or description
// @Tags Groups
// @Accept json
// @Produce json
// @Param id path string true "Group id"
// @Param request body request_models.UpdateGroupRequest true "Update payload"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /groups/{id} [put]
func (g *GroupController) UpdateGroup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	group, err := g.groupService.UpdateGroup(c.Request.Context(), userID, groupID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"group": group}, "Group updated successfully")
}

// DeleteGroup godoc
// @Summary Delete a group
// @Tags Groups
// @Produce json
// @Param id path string true "Group id"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /groups/{id} [delete]
func (g *GroupController) DeleteGroup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := g.groupService.DeleteGroup(c.Request.Context(), userID, groupID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Group deleted successfully")
}

// AddMember godoc
// @Summary Add a member to a group
// @Description Admin-only; the member cap follows the admin's plan
// @Tags Groups
// @Accept json
// @Produce json
// @Param id path string true "Group id"
// @Param request body request_models.AddMemberRequest true "Member payload"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /groups/{id}/members [post]
func (g *GroupController) AddMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	group, err := g.groupService.AddMember(c.Request.Context(), userID, groupID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"group": group}, "Member added successfully")
}

// RemoveMember godoc
// @Summary Remove a member from a group
// @Tags Groups
// @Produce json
// @Param id path string true "Group id"
// @Param memberId path string true "Member id"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /groups/{id}/members/{memberId} [delete]
func (g *GroupController) RemoveMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "memberId")
	if !ok {
		return
	}

	group, err := g.groupService.RemoveMember(c.Request.Context(), userID, groupID, memberID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"group": group}, "Member removed successfully")
}
