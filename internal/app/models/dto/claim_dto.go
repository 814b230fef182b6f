package dto

import (
	"strings"
	"time"

	"github.com/yigit/claimboard/internal/app/models"
)

// SubmitClaimRequest is the multipart form sent with a new claim. The proof itself travels in
// the "proof" file field. Required fields are checked by the service so that every missing
// field is reported at once.
type SubmitClaimRequest struct {
	Title            string   `form:"title" example:"Smart India Hackathon finalist"`
	Description      string   `form:"description" example:"Built a traffic routing prototype"`
	Category         string   `form:"category" example:"Hackathon"`
	EventName        string   `form:"eventName" example:"SIH 2024"`
	Organizer        string   `form:"organizer" example:"Ministry of Education"`
	EventStartDate   string   `form:"eventStartDate" example:"2024-09-01"`
	EventEndDate     string   `form:"eventEndDate" example:"2024-09-03"`
	VerificationLink string   `form:"verificationLink" example:"https://sih.gov.in/results"`
	MentorEmails     []string `form:"mentorEmails" example:"mentor@somaiya.edu"`
}

// SplitMentorEmails flattens repeated and comma-separated mentorEmails values
func (r SubmitClaimRequest) SplitMentorEmails() []string {
	out := make([]string, 0, len(r.MentorEmails))
	for _, v := range r.MentorEmails {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

// ReviewClaimRequest is a proctor's decision on a claim. Status is checked by the claim
// service so an unknown value is reported as an invalid status.
type ReviewClaimRequest struct {
	Status  string `json:"status" example:"APPROVED" enums:"APPROVED,REJECTED,ON_HOLD"`
	Remarks string `json:"remarks" validate:"max=2000" example:"Certificate verified"`
}

// ProofFileResponse describes the uploaded proof without exposing its storage path
type ProofFileResponse struct {
	OriginalName string `json:"originalName" example:"certificate.pdf"`
	MimeType     string `json:"mimeType" example:"application/pdf"`
}

// ClaimResponse represents a claim
type ClaimResponse struct {
	ID               int64              `json:"id" example:"101"`
	StudentID        int64              `json:"studentId" example:"12"`
	MentorIDs        []int64            `json:"mentorIds"`
	ReviewedBy       *int64             `json:"reviewedBy,omitempty" example:"3"`
	Title            string             `json:"title" example:"Smart India Hackathon finalist"`
	Description      string             `json:"description"`
	Category         string             `json:"category" example:"Hackathon"`
	EventName        string             `json:"eventName" example:"SIH 2024"`
	Organizer        string             `json:"organizer" example:"Ministry of Education"`
	EventStartDate   time.Time          `json:"eventStartDate"`
	EventEndDate     *time.Time         `json:"eventEndDate,omitempty"`
	VerificationLink *string            `json:"verificationLink,omitempty"`
	ProofFile        *ProofFileResponse `json:"proofFile,omitempty"`
	Status           string             `json:"status" example:"PENDING" enums:"PENDING,ON_HOLD,APPROVED,REJECTED"`
	ReviewRemarks    string             `json:"reviewRemarks"`
	ReviewedAt       *time.Time         `json:"reviewedAt,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
	Student          *StudentSummary    `json:"student,omitempty"`
}

// ClaimListResponse wraps a list of claims
type ClaimListResponse struct {
	Claims []ClaimResponse `json:"claims"`
}

// NewClaimResponse maps a claim model to its response
func NewClaimResponse(c *models.Claim) ClaimResponse {
	mentors := c.MentorIDs
	if mentors == nil {
		mentors = []int64{}
	}
	resp := ClaimResponse{
		ID:               c.ID,
		StudentID:        c.StudentID,
		MentorIDs:        mentors,
		ReviewedBy:       c.ReviewedBy,
		Title:            c.Title,
		Description:      c.Description,
		Category:         c.Category,
		EventName:        c.EventName,
		Organizer:        c.Organizer,
		EventStartDate:   c.EventStartDate,
		EventEndDate:     c.EventEndDate,
		VerificationLink: c.VerificationLink,
		Status:           string(c.Status),
		ReviewRemarks:    c.ReviewRemarks,
		ReviewedAt:       c.ReviewedAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if c.HasProof() {
		resp.ProofFile = &ProofFileResponse{
			OriginalName: c.Proof.OriginalName,
			MimeType:     c.Proof.MimeType,
		}
	}
	return resp
}

// NewClaimListResponse maps claims to a list response
func NewClaimListResponse(claims []*models.Claim) ClaimListResponse {
	out := make([]ClaimResponse, 0, len(claims))
	for _, c := range claims {
		out = append(out, NewClaimResponse(c))
	}
	return ClaimListResponse{Claims: out}
}

// NewClaimWithStudentListResponse maps reviewer listings, embedding the student summary
func NewClaimWithStudentListResponse(items []models.ClaimWithStudent) ClaimListResponse {
	out := make([]ClaimResponse, 0, len(items))
	for _, item := range items {
		resp := NewClaimResponse(item.Claim)
		resp.Student = NewStudentSummary(item.Student)
		out = append(out, resp)
	}
	return ClaimListResponse{Claims: out}
}
