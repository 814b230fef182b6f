package auth

import (
	"fmt"

	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/pkg/apperrors"
)

// Viewer is the authenticated caller of an operation. The set of implementations is closed:
// Student, Proctor and Mentor. Capabilities are asked of the viewer rather than derived from
// role strings at each call site.
type Viewer interface {
	UserID() int64
	Role() models.RoleType

	// CanSubmitClaims reports whether the viewer may submit claims of their own
	CanSubmitClaims() bool
	// CanReviewClaims reports whether the viewer may approve, reject or hold claims
	CanReviewClaims() bool
	// CanViewMentoredClaims reports whether the viewer may list claims they mentor
	CanViewMentoredClaims() bool
	// SeesRanks reports whether leaderboard ranks are shown to the viewer
	SeesRanks() bool

	sealed()
}

// Student is a viewer with the student role
type Student struct{ ID int64 }

// Proctor is a viewer with the proctor role
type Proctor struct{ ID int64 }

// Mentor is a viewer with the mentor role
type Mentor struct{ ID int64 }

func (v Student) UserID() int64               { return v.ID }
func (v Student) Role() models.RoleType       { return models.RoleStudent }
func (v Student) CanSubmitClaims() bool       { return true }
func (v Student) CanReviewClaims() bool       { return false }
func (v Student) CanViewMentoredClaims() bool { return false }
func (v Student) SeesRanks() bool             { return true }
func (v Student) sealed()                     {}

func (v Proctor) UserID() int64               { return v.ID }
func (v Proctor) Role() models.RoleType       { return models.RoleProctor }
func (v Proctor) CanSubmitClaims() bool       { return false }
func (v Proctor) CanReviewClaims() bool       { return true }
func (v Proctor) CanViewMentoredClaims() bool { return true }
func (v Proctor) SeesRanks() bool             { return false }
func (v Proctor) sealed()                     {}

func (v Mentor) UserID() int64               { return v.ID }
func (v Mentor) Role() models.RoleType       { return models.RoleMentor }
func (v Mentor) CanSubmitClaims() bool       { return false }
func (v Mentor) CanReviewClaims() bool       { return false }
func (v Mentor) CanViewMentoredClaims() bool { return true }
func (v Mentor) SeesRanks() bool             { return false }
func (v Mentor) sealed()                     {}

// NewViewer builds the viewer for an authenticated user id and role
func NewViewer(userID int64, role models.RoleType) (Viewer, error) {
	if userID <= 0 {
		return nil, apperrors.ErrTokenInvalid
	}
	switch role {
	case models.RoleStudent:
		return Student{ID: userID}, nil
	case models.RoleProctor:
		return Proctor{ID: userID}, nil
	case models.RoleMentor:
		return Mentor{ID: userID}, nil
	}
	return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrTokenInvalid, role)
}

// CanAccessProof reports whether the viewer may download the proof of a claim: reviewers
// always, mentors only when assigned to the claim.
func CanAccessProof(v Viewer, claim *models.Claim) bool {
	if v == nil || claim == nil {
		return false
	}
	if v.CanReviewClaims() {
		return true
	}
	return v.CanViewMentoredClaims() && claim.HasMentor(v.UserID())
}

// RequireReviewer returns ErrPermissionDenied unless the viewer may review claims
func RequireReviewer(v Viewer) error {
	if v == nil || !v.CanReviewClaims() {
		return apperrors.NewForbiddenError("only proctors can review claims")
	}
	return nil
}

// RequireSubmitter returns ErrPermissionDenied unless the viewer may submit claims
func RequireSubmitter(v Viewer) error {
	if v == nil || !v.CanSubmitClaims() {
		return apperrors.NewForbiddenError("only students can submit claims")
	}
	return nil
}
