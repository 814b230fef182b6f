package dto

import (
	"time"

	"github.com/yigit/claimboard/internal/app/models"
)

// LeaderboardQuery holds the leaderboard filters
type LeaderboardQuery struct {
	Department    string `form:"department" example:"Computer"`
	Year          string `form:"year" example:"3"`
	CommonMentors int    `form:"commonMentors" validate:"min=0" example:"1"`
}

// ToFilters converts the query into model filters
func (q LeaderboardQuery) ToFilters() models.LeaderboardFilters {
	return models.LeaderboardFilters{
		Department:       q.Department,
		Year:             q.Year,
		MinCommonMentors: q.CommonMentors,
	}
}

// LeaderboardEntryResponse is one leaderboard row. Rank and Position are omitted for
// mentor and proctor viewers.
type LeaderboardEntryResponse struct {
	StudentID        int64     `json:"studentId" example:"12"`
	Name             string    `json:"name" example:"Asha Rao"`
	Email            string    `json:"email" example:"student@somaiya.edu"`
	Department       string    `json:"department" example:"Computer"`
	Year             int       `json:"year" example:"3"`
	ApprovedCount    int       `json:"approvedCount" example:"4"`
	LatestApprovedAt time.Time `json:"latestApprovedAt"`
	Rank             *int      `json:"rank,omitempty" example:"2"`
	Position         *int      `json:"position,omitempty" example:"1"`
}

// LeaderboardResponse is the leaderboard as shown to mentors and proctors
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntryResponse `json:"leaderboard"`
}

// RankedLeaderboardResponse is the leaderboard as shown to students. MyRank is null when the
// viewer has no approved claims.
type RankedLeaderboardResponse struct {
	Leaderboard []LeaderboardEntryResponse `json:"leaderboard"`
	MyRank      *int                       `json:"myRank" example:"5"`
}

// MyMentorsResponse lists the mentors on the viewer's approved claims
type MyMentorsResponse struct {
	MentorIDs []int64 `json:"mentorIds"`
}

// NewLeaderboardResponse maps a leaderboard view to a RankedLeaderboardResponse or a
// LeaderboardResponse depending on whether the view is ranked
func NewLeaderboardResponse(view *models.LeaderboardView) interface{} {
	rows := make([]LeaderboardEntryResponse, 0, len(view.Entries))
	for _, e := range view.Entries {
		row := LeaderboardEntryResponse{
			StudentID:        e.StudentID,
			Name:             e.Name,
			Email:            e.Email,
			Department:       e.Department,
			Year:             e.Year,
			ApprovedCount:    e.ApprovedCount,
			LatestApprovedAt: e.LatestApprovedAt,
		}
		if view.Ranked {
			rank, position := e.Rank, e.Position
			row.Rank = &rank
			row.Position = &position
		}
		rows = append(rows, row)
	}

	if view.Ranked {
		return RankedLeaderboardResponse{Leaderboard: rows, MyRank: view.MyRank}
	}
	return LeaderboardResponse{Leaderboard: rows}
}
