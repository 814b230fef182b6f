package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/pkg/apperrors"
	"github.com/yigit/claimboard/internal/pkg/logger"
)

// IClaimRepository defines the claim record store. A claim's owner is never updated and
// claims are never deleted.
type IClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) (*models.Claim, error)
	FindByID(ctx context.Context, id int64) (*models.Claim, error)
	// ApplyReview writes every field of a review in one statement and returns the stored claim
	ApplyReview(ctx context.Context, id int64, review models.ClaimReview) (*models.Claim, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Claim, error)
	ListByStatus(ctx context.Context, status models.ClaimStatus) ([]*models.Claim, error)
	ListApprovedByMentor(ctx context.Context, mentorID int64) ([]*models.Claim, error)
	// ListApproved returns approved, reviewed claims ordered by student then id
	ListApproved(ctx context.Context) ([]*models.Claim, error)
	ListApprovedByStudent(ctx context.Context, studentID int64) ([]*models.Claim, error)
}

var claimColumns = []string{
	"id", "student_id", "mentor_ids", "reviewed_by", "title", "description", "category",
	"event_name", "organizer", "event_start_date", "event_end_date", "verification_link",
	"proof_path", "proof_original_name", "proof_mime_type", "status", "review_remarks",
	"reviewed_at", "created_at", "updated_at",
}

// assignFallbackMentor only fills mentor_ids when it is still empty at write time
const assignFallbackMentor = "CASE WHEN cardinality(mentor_ids) = 0 AND ?::bigint IS NOT NULL " +
	"THEN ARRAY[?::bigint] ELSE mentor_ids END"

// ClaimRepository handles database operations for claims
type ClaimRepository struct {
	db *pgxpool.Pool
}

// NewClaimRepository creates a new ClaimRepository
func NewClaimRepository(db *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{db: db}
}

func selectClaims() squirrel.SelectBuilder {
	return squirrel.Select(claimColumns...).From("claims").PlaceholderFormat(squirrel.Dollar)
}

func scanClaim(row pgx.Row) (*models.Claim, error) {
	c := &models.Claim{}
	err := row.Scan(
		&c.ID, &c.StudentID, &c.MentorIDs, &c.ReviewedBy, &c.Title, &c.Description, &c.Category,
		&c.EventName, &c.Organizer, &c.EventStartDate, &c.EventEndDate, &c.VerificationLink,
		&c.Proof.Path, &c.Proof.OriginalName, &c.Proof.MimeType, &c.Status, &c.ReviewRemarks,
		&c.ReviewedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClaimNotFound
		}
		return nil, err
	}
	if c.MentorIDs == nil {
		c.MentorIDs = []int64{}
	}
	return c, nil
}

// Create inserts a new claim and returns the stored row
func (r *ClaimRepository) Create(ctx context.Context, claim *models.Claim) (*models.Claim, error) {
	mentors := claim.MentorIDs
	if mentors == nil {
		mentors = []int64{}
	}

	sql, args, err := squirrel.Insert("claims").
		Columns("student_id", "mentor_ids", "title", "description", "category", "event_name", "organizer",
			"event_start_date", "event_end_date", "verification_link", "proof_path", "proof_original_name",
			"proof_mime_type", "status", "review_remarks").
		Values(claim.StudentID, mentors, claim.Title, claim.Description, claim.Category, claim.EventName,
			claim.Organizer, claim.EventStartDate, claim.EventEndDate, claim.VerificationLink, claim.Proof.Path,
			claim.Proof.OriginalName, claim.Proof.MimeType, claim.Status, claim.ReviewRemarks).
		Suffix("RETURNING " + joinColumns(claimColumns)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create claim SQL")
		return nil, err
	}

	created, err := scanClaim(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		logger.Error().Err(err).Int64("studentID", claim.StudentID).Msg("Error executing create claim query")
		return nil, fmt.Errorf("error creating claim: %w", err)
	}
	return created, nil
}

// FindByID retrieves a claim by ID
func (r *ClaimRepository) FindByID(ctx context.Context, id int64) (*models.Claim, error) {
	sql, args, err := selectClaims().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	claim, err := scanClaim(r.db.QueryRow(ctx, sql, args...))
	if err != nil && !errors.Is(err, apperrors.ErrClaimNotFound) {
		logger.Error().Err(err).Int64("claimID", id).Msg("Error getting claim by ID")
		return nil, fmt.Errorf("error getting claim: %w", err)
	}
	return claim, err
}

// ApplyReview sets status, remarks, reviewer and review time and, when given, assigns the
// fallback mentor to a claim that has none. All of it happens in a single UPDATE.
func (r *ClaimRepository) ApplyReview(ctx context.Context, id int64, review models.ClaimReview) (*models.Claim, error) {
	sql, args, err := reviewUpdate(id, review).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building review claim SQL")
		return nil, err
	}

	claim, err := scanClaim(r.db.QueryRow(ctx, sql, args...))
	if err != nil && !errors.Is(err, apperrors.ErrClaimNotFound) {
		logger.Error().Err(err).Int64("claimID", id).Msg("Error executing review claim query")
		return nil, fmt.Errorf("error reviewing claim: %w", err)
	}
	return claim, err
}

func reviewUpdate(id int64, review models.ClaimReview) squirrel.UpdateBuilder {
	return squirrel.Update("claims").
		Set("status", review.Status).
		Set("review_remarks", review.Remarks).
		Set("reviewed_by", review.ReviewerID).
		Set("reviewed_at", review.ReviewedAt).
		Set("updated_at", review.ReviewedAt).
		Set("mentor_ids", squirrel.Expr(assignFallbackMentor, review.FallbackMentorID, review.FallbackMentorID)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(claimColumns)).
		PlaceholderFormat(squirrel.Dollar)
}

// ListByStudent returns a student's claims, newest first
func (r *ClaimRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Claim, error) {
	return r.queryClaims(ctx, selectClaims().
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC", "id DESC"))
}

// ListByStatus returns claims in a status, oldest first
func (r *ClaimRepository) ListByStatus(ctx context.Context, status models.ClaimStatus) ([]*models.Claim, error) {
	return r.queryClaims(ctx, selectClaims().
		Where(squirrel.Eq{"status": status}).
		OrderBy("created_at ASC", "id ASC"))
}

// ListApprovedByMentor returns approved claims the mentor is assigned to, most recently reviewed first
func (r *ClaimRepository) ListApprovedByMentor(ctx context.Context, mentorID int64) ([]*models.Claim, error) {
	return r.queryClaims(ctx, selectClaims().
		Where(squirrel.Eq{"status": models.ClaimStatusApproved}).
		Where(squirrel.Expr("? = ANY(mentor_ids)", mentorID)).
		OrderBy("reviewed_at DESC NULLS LAST", "id DESC"))
}

// ListApproved returns all approved claims with a review time
func (r *ClaimRepository) ListApproved(ctx context.Context) ([]*models.Claim, error) {
	return r.queryClaims(ctx, selectClaims().
		Where(squirrel.Eq{"status": models.ClaimStatusApproved}).
		Where(squirrel.NotEq{"reviewed_at": nil}).
		OrderBy("student_id", "id"))
}

// ListApprovedByStudent returns a student's approved claims in id order
func (r *ClaimRepository) ListApprovedByStudent(ctx context.Context, studentID int64) ([]*models.Claim, error) {
	return r.queryClaims(ctx, selectClaims().
		Where(squirrel.Eq{"status": models.ClaimStatusApproved, "student_id": studentID}).
		OrderBy("id"))
}

func (r *ClaimRepository) queryClaims(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Claim, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying claims")
		return nil, fmt.Errorf("error querying claims: %w", err)
	}
	defer rows.Close()

	claims := make([]*models.Claim, 0)
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning claim: %w", err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating claims: %w", err)
	}
	return claims, nil
}
