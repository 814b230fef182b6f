package models

import "time"

// ProofFile points at the uploaded evidence for a claim
type ProofFile struct {
	Path         string `json:"path" example:"claims/6f1c0c1e-3c55-4c1e-9d8e-0c7b1e0f3a11.pdf"`
	OriginalName string `json:"originalName" example:"certificate.pdf"`
	MimeType     string `json:"mimeType" example:"application/pdf"`
}

// Claim defines the claim model based on the 'claims' table
type Claim struct {
	ID               int64       `json:"id" db:"id"`
	StudentID        int64       `json:"studentId" db:"student_id"`
	MentorIDs        []int64     `json:"mentorIds" db:"mentor_ids"`
	ReviewedBy       *int64      `json:"reviewedBy,omitempty" db:"reviewed_by"`
	Title            string      `json:"title" db:"title"`
	Description      string      `json:"description" db:"description"`
	Category         string      `json:"category" db:"category"`
	EventName        string      `json:"eventName" db:"event_name"`
	Organizer        string      `json:"organizer" db:"organizer"`
	EventStartDate   time.Time   `json:"eventStartDate" db:"event_start_date"`
	EventEndDate     *time.Time  `json:"eventEndDate,omitempty" db:"event_end_date"`
	VerificationLink *string     `json:"verificationLink,omitempty" db:"verification_link"`
	Proof            ProofFile   `json:"proofFile"`
	Status           ClaimStatus `json:"status" db:"status"`
	ReviewRemarks    string      `json:"reviewRemarks" db:"review_remarks"`
	ReviewedAt       *time.Time  `json:"reviewedAt,omitempty" db:"reviewed_at"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time   `json:"updatedAt" db:"updated_at"`
}

// HasMentor reports whether userID is assigned to the claim
func (c *Claim) HasMentor(userID int64) bool {
	for _, id := range c.MentorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasProof reports whether a proof file is attached
func (c *Claim) HasProof() bool {
	return c.Proof.Path != ""
}

// ClaimWithStudent pairs a claim with its owner for reviewer-facing listings
type ClaimWithStudent struct {
	Claim   *Claim
	Student *User // nil if the owner no longer resolves
}

// ClaimReview is the set of fields written by one review
type ClaimReview struct {
	Status     ClaimStatus
	Remarks    string
	ReviewerID int64
	ReviewedAt time.Time
	// FallbackMentorID is assigned only when the stored claim has no mentors
	FallbackMentorID *int64
}
