package controllers

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/claimboard/internal/app/models/dto"
	"github.com/yigit/claimboard/internal/app/services"
	"github.com/yigit/claimboard/internal/middleware"
	"github.com/yigit/claimboard/internal/pkg/logger"
)

// ClaimController handles claim submission, review and listings
type ClaimController struct {
	claimService services.ClaimService
}

// NewClaimController creates a new claim controller
func NewClaimController(claimService services.ClaimService) *ClaimController {
	return &ClaimController{claimService: claimService}
}

// SubmitClaim handles a student's new claim
// @Summary Submit a claim
// @Description Submits an achievement claim with its proof. Every missing required field is reported together.
// @Description Mentor emails must all name active mentors or proctors; with none the fallback mentor is assigned.
// @Tags claims
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Claim title"
// @Param description formData string false "Description"
// @Param category formData string true "Category"
// @Param eventName formData string true "Event name"
// @Param organizer formData string true "Organizer"
// @Param eventStartDate formData string true "Event start date (YYYY-MM-DD or RFC3339)"
// @Param eventEndDate formData string false "Event end date"
// @Param verificationLink formData string false "Public link verifying the achievement"
// @Param mentorEmails formData []string false "Mentor emails, repeated or comma separated" collectionFormat(multi)
// @Param proof formData file true "Proof file (PDF, PNG or JPEG)"
// @Success 201 {object} dto.APIResponse{data=dto.ClaimResponse} "Claim submitted"
// @Failure 400 {object} dto.ErrorResponse "Validation failed, profile incomplete or invalid mentor"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only students can submit claims"
// @Failure 500 {object} dto.ErrorResponse "Fallback mentor not configured"
// @Failure 503 {object} dto.ErrorResponse "Proof storage unavailable"
// @Router /claims/student [post]
func (c *ClaimController) SubmitClaim(ctx *gin.Context) {
	viewer, ok := viewerOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.SubmitClaimRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid form data").
			WithDetails(err.Error())
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var proof *services.ProofUpload
	fileHeader, err := ctx.FormFile("proof")
	switch {
	case err == nil:
		file, err := fileHeader.Open()
		if err != nil {
			logger.Error().Err(err).Msg("Failed to open uploaded proof")
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unreadable proof file").WithField("proof")
			ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		defer file.Close()
		proof = &services.ProofUpload{
			Content:  file,
			Filename: fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
		}
	case errors.Is(err, http.ErrMissingFile):
		// reported by the service together with the other missing fields
	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid multipart form").
			WithDetails(err.Error())
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	claim, err := c.claimService.SubmitClaim(ctx.Request.Context(), viewer, req, proof)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewClaimResponse(claim)))
}

// ListStudentClaims lists the authenticated student's claims
// @Summary List my claims
// @Description Returns the student's own claims, newest first
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ClaimListResponse} "Claims"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only students have claims"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /claims/student [get]
func (c *ClaimController) ListStudentClaims(ctx *gin.Context) {
	viewer, ok := viewerOrAbort(ctx)
	if !ok {
		return
	}

	claims, err := c.claimService.ListStudentClaims(ctx.Request.Context(), viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewClaimListResponse(claims)))
}

// ListPendingClaims lists claims awaiting review
// @Summary List pending claims
// @Description Returns PENDING claims with their student, oldest first
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ClaimListResponse} "Pending claims"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only proctors can review claims"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /claims/proctor [get]
func (c *ClaimController) ListPendingClaims(ctx *gin.Context) {
	viewer, ok := viewerOrAbort(ctx)
	if !ok {
		return
	}

	items, err := c.claimService.ListPendingClaims(ctx.Request.Context(), viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewClaimWithStudentListResponse(items)))
}

// ReviewClaim records a proctor's decision
// @Summary Review a claim
// @Description Sets the claim to APPROVED, REJECTED or ON_HOLD. Approving a claim without mentors assigns the fallback mentor.
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param claimId path int true "Claim ID" Format(int64) minimum(1)
// @Param request body dto.ReviewClaimRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.ClaimResponse} "Claim reviewed"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only proctors can review claims"
// @Failure 404 {object} dto.ErrorResponse "Claim not found"
// @Failure 500 {object} dto.ErrorResponse "Fallback mentor not configured"
// @Router /claims/proctor/{claimId} [patch]
func (c *ClaimController) ReviewClaim(ctx *gin.Context) {
	viewer, ok := viewerOrAbort(ctx)
	if !ok {
		return
	}
	claimID, ok := idParamOrAbort(ctx, "claimId")
	if !ok {
		return
	}

	var req dto.ReviewClaimRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	claim, err := c.claimService.ReviewClaim(ctx.Request.Context(), viewer, claimID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewClaimResponse(claim)))
}

// ListMentorClaims lists approved claims the viewer mentors
// @Summary List mentored claims
// @Description Returns APPROVED claims that list the viewer as a mentor
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ClaimListResponse} "Mentored claims"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only mentors and proctors"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /claims/mentor [get]
func (c *ClaimController) ListMentorClaims(ctx *gin.Context) {
	viewer, ok := viewerOrAbort(ctx)
	if !ok {
		return
	}

	items, err := c.claimService.ListMentorClaims(ctx.Request.Context(), viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewClaimWithStudentListResponse(items)))
}

// DownloadProof streams a claim's proof file
// @Summary Download proof
// @Description Proctors may download any proof; mentors only for claims they are assigned to
// @Tags claims
// @Produce application/pdf,image/png,image/jpeg
// @Security BearerAuth
// @Param claimId path int true "Claim ID" Format(int64) minimum(1)
// @Success 200 {file} file "Proof file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not assigned to this claim"
// @Failure 404 {object} dto.ErrorResponse "Claim or proof not found"
// @Failure 503 {object} dto.ErrorResponse "Proof storage unavailable"
// @Router /claims/{claimId}/proof/download [get]
func (c *ClaimController) DownloadProof(ctx *gin.Context) {
	viewer, ok := viewerOrAbort(ctx)
	if !ok {
		return
	}
	claimID, ok := idParamOrAbort(ctx, "claimId")
	if !ok {
		return
	}

	proof, err := c.claimService.GetProof(ctx.Request.Context(), viewer, claimID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer proof.Content.Close()

	headers := map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": proof.Filename}),
	}
	ctx.DataFromReader(http.StatusOK, -1, proof.MimeType, proof.Content, headers)
}
