package dto

import (
	"time"

	"github.com/yigit/claimboard/internal/app/models"
)

// UserResponse represents a user's own profile
type UserResponse struct {
	ID              int64     `json:"id" example:"1"`
	Email           string    `json:"email" example:"student@somaiya.edu"`
	Name            string    `json:"name" example:"Asha Rao"`
	Role            string    `json:"role" example:"student" enums:"student,proctor,mentor"`
	IsActive        bool      `json:"isActive" example:"true"`
	Department      string    `json:"department,omitempty" example:"Computer"`
	Year            int       `json:"year,omitempty" example:"3"`
	RollNo          string    `json:"rollNo,omitempty" example:"16010121001"`
	GithubURL       string    `json:"githubUrl,omitempty" example:"https://github.com/asha"`
	LinkedinURL     string    `json:"linkedinUrl,omitempty" example:"https://www.linkedin.com/in/asha"`
	ProfileComplete bool      `json:"profileComplete" example:"true"`
	CreatedAt       time.Time `json:"createdAt"`
}

// StudentSummary is the owner information shown next to a claim
type StudentSummary struct {
	ID         int64  `json:"id" example:"12"`
	Name       string `json:"name" example:"Asha Rao"`
	Email      string `json:"email" example:"student@somaiya.edu"`
	Department string `json:"department,omitempty" example:"Computer"`
	Year       int    `json:"year,omitempty" example:"3"`
	RollNo     string `json:"rollNo,omitempty" example:"16010121001"`
}

// UpdateProfileRequest is a partial profile update; omitted fields are left unchanged
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100" example:"Asha Rao"`
	Department  *string `json:"department,omitempty" validate:"omitempty,max=100" example:"Computer"`
	Year        *int    `json:"year,omitempty" validate:"omitempty,min=1,max=5" example:"3"`
	RollNo      *string `json:"rollNo,omitempty" validate:"omitempty,max=50" example:"16010121001"`
	GithubURL   *string `json:"githubUrl,omitempty" validate:"omitempty,github_url" example:"https://github.com/asha"`
	LinkedinURL *string `json:"linkedinUrl,omitempty" validate:"omitempty,linkedin_url" example:"https://www.linkedin.com/in/asha"`
}

// ToProfileUpdate converts the request into the model update
func (r UpdateProfileRequest) ToProfileUpdate() models.ProfileUpdate {
	return models.ProfileUpdate{
		Name:        r.Name,
		Department:  r.Department,
		Year:        r.Year,
		RollNo:      r.RollNo,
		GithubURL:   r.GithubURL,
		LinkedinURL: r.LinkedinURL,
	}
}

// NewUserResponse maps a user model to its response
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            string(u.Role),
		IsActive:        u.IsActive,
		Department:      u.Department,
		Year:            u.Year,
		RollNo:          u.RollNo,
		GithubURL:       u.GithubURL,
		LinkedinURL:     u.LinkedinURL,
		ProfileComplete: u.Role != models.RoleStudent || u.IsProfileComplete(),
		CreatedAt:       u.CreatedAt,
	}
}

// NewStudentSummary maps a user to the summary shown on reviewer listings
func NewStudentSummary(u *models.User) *StudentSummary {
	if u == nil {
		return nil
	}
	return &StudentSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Department: u.Department,
		Year:       u.Year,
		RollNo:     u.RollNo,
	}
}
