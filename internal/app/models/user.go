package models

import (
	"strings"
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Email       string    `json:"email" db:"email" example:"student@somaiya.edu"` // Stored lowercase
	Name        string    `json:"name" db:"name" example:"Asha Rao"`
	Role        RoleType  `json:"role" db:"role" example:"student"`
	IsActive    bool      `json:"isActive" db:"is_active" example:"true"`
	Department  string    `json:"department" db:"department" example:"Computer"`
	Year        int       `json:"year" db:"year" example:"3"` // 0 when unset
	RollNo      string    `json:"rollNo" db:"roll_no" example:"16010121001"`
	GithubURL   string    `json:"githubUrl" db:"github_url" example:"https://github.com/asha"`
	LinkedinURL string    `json:"linkedinUrl" db:"linkedin_url" example:"https://www.linkedin.com/in/asha"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// IsProfileComplete reports whether every student profile field is filled in.
func (u *User) IsProfileComplete() bool {
	return strings.TrimSpace(u.Department) != "" &&
		u.Year != 0 &&
		strings.TrimSpace(u.RollNo) != "" &&
		strings.TrimSpace(u.GithubURL) != "" &&
		strings.TrimSpace(u.LinkedinURL) != ""
}

// ProfileUpdate is a partial update of a user; nil fields are left untouched.
type ProfileUpdate struct {
	Name        *string
	Department  *string
	Year        *int
	RollNo      *string
	GithubURL   *string
	LinkedinURL *string
}

// IsEmpty reports whether the update changes nothing
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Department == nil && p.Year == nil &&
		p.RollNo == nil && p.GithubURL == nil && p.LinkedinURL == nil
}

// TouchesStanding reports whether the update changes data shown on the leaderboard
func (p ProfileUpdate) TouchesStanding() bool {
	return p.Name != nil || p.Department != nil || p.Year != nil
}

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
