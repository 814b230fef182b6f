package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yigit/claimboard/internal/app/auth"
	"github.com/yigit/claimboard/internal/app/models"
)

// AggregateApproved groups approved, reviewed claims by student. Students appear in order of
// their first qualifying claim; mentor ids keep first-seen order without duplicates.
func AggregateApproved(claims []*models.Claim) []models.StudentAggregate {
	index := make(map[int64]int)
	out := make([]models.StudentAggregate, 0)
	seenMentor := make(map[int64]map[int64]bool)

	for _, c := range claims {
		if c == nil || c.Status != models.ClaimStatusApproved || c.ReviewedAt == nil {
			continue
		}

		i, ok := index[c.StudentID]
		if !ok {
			i = len(out)
			index[c.StudentID] = i
			out = append(out, models.StudentAggregate{StudentID: c.StudentID, MentorIDs: []int64{}})
			seenMentor[c.StudentID] = make(map[int64]bool)
		}

		agg := &out[i]
		agg.ApprovedCount++
		if c.ReviewedAt.After(agg.LatestApprovedAt) {
			agg.LatestApprovedAt = *c.ReviewedAt
		}
		for _, m := range c.MentorIDs {
			if !seenMentor[c.StudentID][m] {
				seenMentor[c.StudentID][m] = true
				agg.MentorIDs = append(agg.MentorIDs, m)
			}
		}
	}
	return out
}

// JoinDirectory attaches directory data to each aggregate. Aggregates whose student is not in
// users are dropped.
func JoinDirectory(aggregates []models.StudentAggregate, users []*models.User) []models.Standing {
	byID := make(map[int64]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]models.Standing, 0, len(aggregates))
	for _, a := range aggregates {
		u, ok := byID[a.StudentID]
		if !ok {
			continue
		}
		out = append(out, models.Standing{
			StudentAggregate: a,
			Name:             u.Name,
			Email:            u.Email,
			Department:       u.Department,
			Year:             u.Year,
		})
	}
	return out
}

// SortStandings orders by approved count descending, then most recent approval first. Ties on
// both keep their input order.
func SortStandings(standings []models.Standing) []models.Standing {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.ApprovedCount != b.ApprovedCount {
			return a.ApprovedCount > b.ApprovedCount
		}
		return a.LatestApprovedAt.After(b.LatestApprovedAt)
	})
	return standings
}

// AssignRanks numbers sorted standings 1..n
func AssignRanks(standings []models.Standing) []models.Standing {
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

// ApplyFilters keeps the standings matching every filter. viewerMentors is the viewer's own
// mentor set and is only consulted when MinCommonMentors > 0. Ranks are left untouched.
func ApplyFilters(standings []models.Standing, filters models.LeaderboardFilters, viewerMentors []int64) []models.LeaderboardEntry {
	department := strings.TrimSpace(filters.Department)
	year := strings.TrimSpace(filters.Year)

	mine := make(map[int64]bool, len(viewerMentors))
	for _, m := range viewerMentors {
		mine[m] = true
	}

	out := make([]models.LeaderboardEntry, 0, len(standings))
	for _, s := range standings {
		if department != "" && s.Department != department {
			continue
		}
		if year != "" && strconv.Itoa(s.Year) != year {
			continue
		}
		if filters.MinCommonMentors > 0 && commonMentors(s.MentorIDs, mine) < filters.MinCommonMentors {
			continue
		}
		out = append(out, models.LeaderboardEntry{Standing: s, Position: len(out) + 1})
	}
	return out
}

func commonMentors(ids []int64, set map[int64]bool) int {
	n := 0
	for _, id := range ids {
		if set[id] {
			n++
		}
	}
	return n
}

// ShapeForViewer builds the view returned to the viewer. Students see ranks and their own
// global rank from standings; mentors and proctors see neither.
func ShapeForViewer(standings []models.Standing, entries []models.LeaderboardEntry, viewer auth.Viewer) *models.LeaderboardView {
	view := &models.LeaderboardView{Entries: entries, Ranked: viewer.SeesRanks()}
	if !view.Ranked {
		return view
	}
	for _, s := range standings {
		if s.StudentID == viewer.UserID() {
			rank := s.Rank
			view.MyRank = &rank
			break
		}
	}
	return view
}

// mentorsOf returns the mentor set of a student from the ranked standings
func mentorsOf(standings []models.Standing, studentID int64) []int64 {
	for _, s := range standings {
		if s.StudentID == studentID {
			return s.MentorIDs
		}
	}
	return nil
}
