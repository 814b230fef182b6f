package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/claimboard/internal/app/models/dto"
	"github.com/yigit/claimboard/internal/app/services"
	"github.com/yigit/claimboard/internal/middleware"
)

// LeaderboardController serves the student leaderboard
type LeaderboardController struct {
	leaderboardService services.LeaderboardService
}

// NewLeaderboardController creates a new leaderboard controller
func NewLeaderboardController(leaderboardService services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboardService: leaderboardService}
}

// GetLeaderboard returns the standings visible to the viewer
// @Summary Get leaderboard
// @Description Students ranked by approved claims. Ranks are global; filters add a display position.
// @Description Students also receive myRank. Mentors and proctors get the list without ranks.
// @Description commonMentors only applies to student viewers.
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Param department query string false "Exact department"
// @Param year query string false "Academic year"
// @Param commonMentors query int false "Minimum mentors shared with the viewer" minimum(0)
// @Success 200 {object} dto.APIResponse{data=dto.RankedLeaderboardResponse} "Leaderboard for students"
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	viewer, ok := viewerOrAbort(ctx)
	if !ok {
		return
	}

	var query dto.LeaderboardQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	view, err := c.leaderboardService.Leaderboard(ctx.Request.Context(), viewer, query.ToFilters())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewLeaderboardResponse(view)))
}

// GetMyMentors lists the mentors on the viewer's approved claims
// @Summary Get my mentors
// @Description Distinct mentor ids across the student's approved claims; empty for other roles
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MyMentorsResponse} "Mentor ids"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /leaderboard/me/mentors [get]
func (c *LeaderboardController) GetMyMentors(ctx *gin.Context) {
	viewer, ok := viewerOrAbort(ctx)
	if !ok {
		return
	}

	mentors, err := c.leaderboardService.MyMentors(ctx.Request.Context(), viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MyMentorsResponse{MentorIDs: mentors}))
}
