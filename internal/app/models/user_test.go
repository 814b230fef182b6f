package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeStudent() *User {
	return &User{
		Role:        RoleStudent,
		Department:  "Computer",
		Year:        2,
		RollNo:      "1601",
		GithubURL:   "https://github.com/a",
		LinkedinURL: "https://linkedin.com/in/a",
	}
}

func TestUser_IsProfileComplete(t *testing.T) {
	assert.True(t, completeStudent().IsProfileComplete())

	tests := []struct {
		name   string
		mutate func(u *User)
	}{
		{"missing department", func(u *User) { u.Department = "" }},
		{"blank department", func(u *User) { u.Department = "   " }},
		{"missing year", func(u *User) { u.Year = 0 }},
		{"missing roll number", func(u *User) { u.RollNo = "" }},
		{"missing github", func(u *User) { u.GithubURL = "" }},
		{"missing linkedin", func(u *User) { u.LinkedinURL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := completeStudent()
			tt.mutate(u)
			assert.False(t, u.IsProfileComplete())
		})
	}
}

func TestClaim_HasMentor(t *testing.T) {
	c := &Claim{MentorIDs: []int64{3, 7}}
	assert.True(t, c.HasMentor(7))
	assert.False(t, c.HasMentor(4))
	assert.False(t, (&Claim{}).HasMentor(1))
}

func TestRoleAndStatusHelpers(t *testing.T) {
	assert.True(t, RoleMentor.CanMentor())
	assert.True(t, RoleProctor.CanMentor())
	assert.False(t, RoleStudent.CanMentor())
	assert.False(t, RoleType("admin").IsValid())

	assert.True(t, ClaimStatusOnHold.IsReviewOutcome())
	assert.False(t, ClaimStatusPending.IsReviewOutcome())
	assert.False(t, ClaimStatus("approved").IsReviewOutcome())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a.b@somaiya.edu", NormalizeEmail("  A.B@Somaiya.EDU "))
}
