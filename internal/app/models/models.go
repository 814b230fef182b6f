package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleProctor RoleType = "proctor"
	RoleMentor  RoleType = "mentor"
)

// IsValid reports whether r is one of the known roles
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleProctor, RoleMentor:
		return true
	}
	return false
}

// CanMentor reports whether accounts with this role may be assigned to claims as mentors
func (r RoleType) CanMentor() bool {
	return r == RoleMentor || r == RoleProctor
}

// ClaimStatus is the review state of a claim
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "PENDING"
	ClaimStatusOnHold   ClaimStatus = "ON_HOLD"
	ClaimStatusApproved ClaimStatus = "APPROVED"
	ClaimStatusRejected ClaimStatus = "REJECTED"
)

// IsReviewOutcome reports whether a proctor may move a claim into this status
func (s ClaimStatus) IsReviewOutcome() bool {
	switch s {
	case ClaimStatusApproved, ClaimStatusRejected, ClaimStatusOnHold:
		return true
	}
	return false
}
