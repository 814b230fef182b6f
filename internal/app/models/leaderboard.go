package models

import "time"

// StudentAggregate is one student's approved-claim totals
type StudentAggregate struct {
	StudentID        int64     `json:"studentId"`
	ApprovedCount    int       `json:"approvedCount"`
	LatestApprovedAt time.Time `json:"latestApprovedAt"`
	MentorIDs        []int64   `json:"mentorIds"`
}

// Standing is an aggregate joined with directory data. Rank is its 1-based position in the
// full sorted list and is never renumbered by filtering.
type Standing struct {
	StudentAggregate
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Year       int    `json:"year"`
	Rank       int    `json:"rank"`
}

// LeaderboardFilters narrows the standings shown to a viewer
type LeaderboardFilters struct {
	Department       string
	Year             string
	MinCommonMentors int
}

// LeaderboardEntry is a standing as shown after filtering
type LeaderboardEntry struct {
	Standing
	Position int // 1-based position in the filtered list
}

// LeaderboardView is the viewer-shaped result. Ranked is false for mentor and proctor viewers,
// in which case Rank/Position on entries and MyRank must not be exposed.
type LeaderboardView struct {
	Entries []LeaderboardEntry
	Ranked  bool
	MyRank  *int
}
