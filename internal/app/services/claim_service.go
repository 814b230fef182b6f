package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"github.com/yigit/claimboard/internal/app/auth"
	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/app/models/dto"
	"github.com/yigit/claimboard/internal/app/repositories"
	"github.com/yigit/claimboard/internal/pkg/apperrors"
	"github.com/yigit/claimboard/internal/pkg/events"
	"github.com/yigit/claimboard/internal/pkg/filestorage"
	"github.com/yigit/claimboard/internal/pkg/helpers"
)

// ProofUpload is the evidence file sent with a claim
type ProofUpload struct {
	Content  io.Reader
	Filename string
	MimeType string
}

// ProofDownload is an opened proof file. The caller closes Content.
type ProofDownload struct {
	Content  io.ReadCloser
	Filename string
	MimeType string
}

// ClaimService defines the interface for claim operations
type ClaimService interface {
	SubmitClaim(ctx context.Context, viewer auth.Viewer, req dto.SubmitClaimRequest, proof *ProofUpload) (*models.Claim, error)
	ReviewClaim(ctx context.Context, viewer auth.Viewer, claimID int64, req dto.ReviewClaimRequest) (*models.Claim, error)
	ListStudentClaims(ctx context.Context, viewer auth.Viewer) ([]*models.Claim, error)
	ListPendingClaims(ctx context.Context, viewer auth.Viewer) ([]models.ClaimWithStudent, error)
	ListMentorClaims(ctx context.Context, viewer auth.Viewer) ([]models.ClaimWithStudent, error)
	GetProof(ctx context.Context, viewer auth.Viewer, claimID int64) (*ProofDownload, error)
}

// claimServiceImpl implements ClaimService
type claimServiceImpl struct {
	claimRepo   repositories.IClaimRepository
	userRepo    repositories.IUserRepository
	fileStorage filestorage.FileStorage
	fallback    FallbackMentorResolver
	cache       StandingsCache
	publisher   EventPublisher
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewClaimService creates a new ClaimService. cache and publisher may be nil.
func NewClaimService(
	claimRepo repositories.IClaimRepository,
	userRepo repositories.IUserRepository,
	fileStorage filestorage.FileStorage,
	fallback FallbackMentorResolver,
	cache StandingsCache,
	publisher EventPublisher,
	logger zerolog.Logger,
) ClaimService {
	return newClaimService(claimRepo, userRepo, fileStorage, fallback, cache, publisher, logger)
}

func newClaimService(
	claimRepo repositories.IClaimRepository,
	userRepo repositories.IUserRepository,
	fileStorage filestorage.FileStorage,
	fallback FallbackMentorResolver,
	cache StandingsCache,
	publisher EventPublisher,
	logger zerolog.Logger,
) *claimServiceImpl {
	if cache == nil {
		cache = noopCache{}
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &claimServiceImpl{
		claimRepo:   claimRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		fallback:    fallback,
		cache:       cache,
		publisher:   publisher,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger,
		now:         time.Now,
	}
}

// claimDraft is a validated submission waiting for its proof to be stored
type claimDraft struct {
	title            string
	description      string
	category         string
	eventName        string
	organizer        string
	eventStartDate   time.Time
	eventEndDate     *time.Time
	verificationLink *string
}

// SubmitClaim validates a student's claim, resolves its mentors, stores the proof and only
// then inserts the claim. Nothing is persisted when any step before the insert fails.
func (s *claimServiceImpl) SubmitClaim(ctx context.Context, viewer auth.Viewer, req dto.SubmitClaimRequest, proof *ProofUpload) (*models.Claim, error) {
	if err := auth.RequireSubmitter(viewer); err != nil {
		return nil, err
	}

	student, err := s.userRepo.FindByID(ctx, viewer.UserID())
	if err != nil {
		return nil, fmt.Errorf("error finding student: %w", err)
	}
	if !student.IsProfileComplete() {
		return nil, apperrors.ErrProfileIncomplete
	}

	draft, err := s.validateSubmission(req, proof)
	if err != nil {
		return nil, err
	}

	mentorIDs, err := s.resolveMentors(ctx, req.SplitMentorEmails())
	if err != nil {
		return nil, err
	}
	if len(mentorIDs) == 0 {
		mentor, err := s.fallback.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		mentorIDs = []int64{mentor.ID}
	}

	stored, err := s.fileStorage.Store(ctx, proof.Content, proof.MimeType, proof.Filename)
	if err != nil {
		return nil, s.mapStorageError(err)
	}

	claim := &models.Claim{
		StudentID:        student.ID,
		MentorIDs:        mentorIDs,
		Title:            draft.title,
		Description:      draft.description,
		Category:         draft.category,
		EventName:        draft.eventName,
		Organizer:        draft.organizer,
		EventStartDate:   draft.eventStartDate,
		EventEndDate:     draft.eventEndDate,
		VerificationLink: draft.verificationLink,
		Proof: models.ProofFile{
			Path:         stored.Path,
			OriginalName: stored.OriginalName,
			MimeType:     stored.MimeType,
		},
		Status: models.ClaimStatusPending,
	}

	created, err := s.claimRepo.Create(ctx, claim)
	if err != nil {
		if delErr := s.fileStorage.Delete(stored.Path); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", stored.Path).Msg("Failed to remove orphaned proof file")
		}
		return nil, fmt.Errorf("error creating claim: %w", err)
	}

	s.logger.Info().
		Int64("claimID", created.ID).
		Int64("studentID", created.StudentID).
		Ints64("mentorIDs", created.MentorIDs).
		Msg("Claim submitted")

	s.publisher.Publish(ctx, events.ClaimEvent{
		Type:      events.TypeClaimSubmitted,
		ClaimID:   created.ID,
		StudentID: created.StudentID,
		Status:    string(created.Status),
		ActorID:   viewer.UserID(),
		At:        s.now(),
	})

	return created, nil
}

func (s *claimServiceImpl) validateSubmission(req dto.SubmitClaimRequest, proof *ProofUpload) (*claimDraft, error) {
	draft := &claimDraft{
		title:       s.clean(req.Title),
		description: s.clean(req.Description),
		category:    s.clean(req.Category),
		eventName:   s.clean(req.EventName),
		organizer:   s.clean(req.Organizer),
	}

	var missing, invalid []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", draft.title},
		{"category", draft.category},
		{"eventName", draft.eventName},
		{"organizer", draft.organizer},
		{"eventStartDate", strings.TrimSpace(req.EventStartDate)},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if proof == nil || proof.Content == nil {
		missing = append(missing, "proof")
	} else if !filestorage.IsAllowedType(proof.MimeType) {
		invalid = append(invalid, "proof")
	}

	if strings.TrimSpace(req.EventStartDate) != "" {
		start, err := helpers.ParseDate(req.EventStartDate)
		if err != nil {
			invalid = append(invalid, "eventStartDate")
		} else {
			draft.eventStartDate = start
		}
	}
	end, err := helpers.ParseOptionalDate(req.EventEndDate)
	switch {
	case err != nil:
		invalid = append(invalid, "eventEndDate")
	case end != nil && !draft.eventStartDate.IsZero() && end.Before(draft.eventStartDate):
		invalid = append(invalid, "eventEndDate")
	default:
		draft.eventEndDate = end
	}

	if link := strings.TrimSpace(req.VerificationLink); link != "" {
		if !isHTTPURL(link) {
			invalid = append(invalid, "verificationLink")
		} else {
			draft.verificationLink = &link
		}
	}

	if len(missing) == 0 && len(invalid) == 0 {
		return draft, nil
	}

	fields := append(append([]string{}, missing...), invalid...)
	message := "invalid claim fields"
	if len(missing) > 0 {
		message = "missing required fields"
	}
	return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, message).WithDetails(map[string]interface{}{
		"fields":  fields,
		"missing": nonNil(missing),
		"invalid": nonNil(invalid),
	})
}

// resolveMentors maps mentor emails to account ids. Every email must name an active mentor or
// proctor; otherwise no id is returned.
func (s *claimServiceImpl) resolveMentors(ctx context.Context, raw []string) ([]int64, error) {
	emails := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, e := range raw {
		e = models.NormalizeEmail(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		emails = append(emails, e)
	}
	if len(emails) == 0 {
		return nil, nil
	}

	users, err := s.userRepo.FindManyByEmails(ctx, emails)
	if err != nil {
		return nil, fmt.Errorf("error finding mentors: %w", err)
	}
	byEmail := make(map[string]*models.User, len(users))
	for _, u := range users {
		byEmail[models.NormalizeEmail(u.Email)] = u
	}

	ids := make([]int64, 0, len(emails))
	var rejected []string
	for _, e := range emails {
		u, ok := byEmail[e]
		if !ok || !u.IsActive || !u.Role.CanMentor() {
			rejected = append(rejected, e)
			continue
		}
		ids = append(ids, u.ID)
	}
	if len(rejected) > 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidMentor, apperrors.ErrInvalidMentor.Error()).
			WithDetails(map[string]interface{}{"emails": rejected})
	}
	return ids, nil
}

func (s *claimServiceImpl) mapStorageError(err error) error {
	switch {
	case errors.Is(err, filestorage.ErrFileTooLarge):
		return apperrors.NewValidationError("proof file is too large", "proof")
	case errors.Is(err, filestorage.ErrUnsupportedType):
		return apperrors.NewValidationError("proof must be a PDF, PNG or JPEG file", "proof")
	case errors.Is(err, filestorage.ErrEmptyFile):
		return apperrors.NewValidationError("proof file is empty", "proof")
	}
	s.logger.Error().Err(err).Msg("Failed to store proof file")
	return apperrors.NewStorageError(err)
}

// ReviewClaim moves a claim to APPROVED, REJECTED or ON_HOLD. Approving a claim without
// mentors assigns the fallback mentor in the same write.
func (s *claimServiceImpl) ReviewClaim(ctx context.Context, viewer auth.Viewer, claimID int64, req dto.ReviewClaimRequest) (*models.Claim, error) {
	if err := auth.RequireReviewer(viewer); err != nil {
		return nil, err
	}

	status := models.ClaimStatus(strings.TrimSpace(req.Status))
	if !status.IsReviewOutcome() {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatus, "status must be one of APPROVED, REJECTED, ON_HOLD")
	}

	claim, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("error finding claim: %w", err)
	}

	review := models.ClaimReview{
		Status:     status,
		Remarks:    s.clean(req.Remarks),
		ReviewerID: viewer.UserID(),
		ReviewedAt: s.now().UTC(),
	}
	if status == models.ClaimStatusApproved && len(claim.MentorIDs) == 0 {
		mentor, err := s.fallback.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		review.FallbackMentorID = &mentor.ID
	}

	updated, err := s.claimRepo.ApplyReview(ctx, claimID, review)
	if err != nil {
		return nil, fmt.Errorf("error reviewing claim: %w", err)
	}

	s.cache.Invalidate(ctx)

	s.logger.Info().
		Int64("claimID", updated.ID).
		Str("status", string(updated.Status)).
		Int64("reviewerID", viewer.UserID()).
		Msg("Claim reviewed")

	s.publisher.Publish(ctx, events.ClaimEvent{
		Type:      events.TypeClaimReviewed,
		ClaimID:   updated.ID,
		StudentID: updated.StudentID,
		Status:    string(updated.Status),
		ActorID:   viewer.UserID(),
		At:        review.ReviewedAt,
	})

	return updated, nil
}

// ListStudentClaims returns the viewer's own claims, newest first
func (s *claimServiceImpl) ListStudentClaims(ctx context.Context, viewer auth.Viewer) ([]*models.Claim, error) {
	if err := auth.RequireSubmitter(viewer); err != nil {
		return nil, err
	}
	claims, err := s.claimRepo.ListByStudent(ctx, viewer.UserID())
	if err != nil {
		return nil, fmt.Errorf("error listing claims: %w", err)
	}
	return claims, nil
}

// ListPendingClaims returns claims awaiting review, oldest first
func (s *claimServiceImpl) ListPendingClaims(ctx context.Context, viewer auth.Viewer) ([]models.ClaimWithStudent, error) {
	if err := auth.RequireReviewer(viewer); err != nil {
		return nil, err
	}
	claims, err := s.claimRepo.ListByStatus(ctx, models.ClaimStatusPending)
	if err != nil {
		return nil, fmt.Errorf("error listing pending claims: %w", err)
	}
	return s.withStudents(ctx, claims)
}

// ListMentorClaims returns approved claims the viewer is assigned to
func (s *claimServiceImpl) ListMentorClaims(ctx context.Context, viewer auth.Viewer) ([]models.ClaimWithStudent, error) {
	if viewer == nil || !viewer.CanViewMentoredClaims() {
		return nil, apperrors.NewForbiddenError("only mentors and proctors can list mentored claims")
	}
	claims, err := s.claimRepo.ListApprovedByMentor(ctx, viewer.UserID())
	if err != nil {
		return nil, fmt.Errorf("error listing mentored claims: %w", err)
	}
	return s.withStudents(ctx, claims)
}

func (s *claimServiceImpl) withStudents(ctx context.Context, claims []*models.Claim) ([]models.ClaimWithStudent, error) {
	ids := make([]int64, 0, len(claims))
	seen := make(map[int64]bool, len(claims))
	for _, c := range claims {
		if !seen[c.StudentID] {
			seen[c.StudentID] = true
			ids = append(ids, c.StudentID)
		}
	}

	students, err := s.userRepo.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error finding students: %w", err)
	}
	byID := make(map[int64]*models.User, len(students))
	for _, u := range students {
		byID[u.ID] = u
	}

	out := make([]models.ClaimWithStudent, 0, len(claims))
	for _, c := range claims {
		out = append(out, models.ClaimWithStudent{Claim: c, Student: byID[c.StudentID]})
	}
	return out, nil
}

// GetProof opens a claim's proof for a proctor or an assigned mentor
func (s *claimServiceImpl) GetProof(ctx context.Context, viewer auth.Viewer, claimID int64) (*ProofDownload, error) {
	if viewer == nil || (!viewer.CanReviewClaims() && !viewer.CanViewMentoredClaims()) {
		return nil, apperrors.NewForbiddenError("only proctors and mentors can download proofs")
	}

	claim, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("error finding claim: %w", err)
	}
	if !auth.CanAccessProof(viewer, claim) {
		return nil, apperrors.NewForbiddenError("you are not assigned to this claim")
	}
	if !claim.HasProof() {
		return nil, apperrors.ErrProofNotFound
	}

	content, err := s.fileStorage.Open(claim.Proof.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Int64("claimID", claimID).Str("path", claim.Proof.Path).Msg("Proof file missing from storage")
			return nil, apperrors.ErrProofNotFound
		}
		return nil, apperrors.NewStorageError(err)
	}

	return &ProofDownload{
		Content:  content,
		Filename: claim.Proof.OriginalName,
		MimeType: claim.Proof.MimeType,
	}, nil
}

// clean strips markup from user text. The policy escapes entities, which are decoded again
// because the text is served as JSON.
func (s *claimServiceImpl) clean(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(strings.TrimSpace(value))))
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
