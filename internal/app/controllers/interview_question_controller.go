package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/app/repositories"
	"github.com/arjun/placementhub/internal/app/services"
	"github.com/arjun/placementhub/internal/middleware"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/listing"
)

// InterviewQuestionController handles interview question operations
type InterviewQuestionController struct {
	questionService services.InterviewQuestionService
}

// NewInterviewQuestionController creates a new InterviewQuestionController
func NewInterviewQuestionController(questionService services.InterviewQuestionService) *InterviewQuestionController {
	return &InterviewQuestionController{
		questionService: questionService,
	}
}

// ListQuestions handles retrieving questions with search, filtering and pagination
// @Summary List interview questions
// @Description Retrieves a page of questions with comments and upvotes. Search spans company, job role, title and tags.
// @Tags interview-questions
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size (default: 10, max: 100)"
// @Param search query string false "Search term"
// @Param company query string false "Filter by company (substring)"
// @Param roundType query string false "Filter by round type (exact)"
// @Param difficulty query string false "Filter by difficulty (exact)"
// @Param driveYear query string false "Filter by drive year (exact)"
// @Param sortBy query string false "Sort field (createdAt, company)"
// @Param sortOrder query string false "Sort order (ASC, DESC)"
// @Success 200 {object} dto.QuestionListResponse "Questions retrieved successfully"
// @Security BearerAuth
// @Router /interview-questions [get]
func (c *InterviewQuestionController) ListQuestions(ctx *gin.Context) {
	q := listing.ParseQuery(ctx, repositories.QuestionListSpec)

	resp, err := c.questionService.ListQuestions(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetQuestion handles retrieving a single question
// @Summary Get an interview question
// @Tags interview-questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} models.InterviewQuestion "Question retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Security BearerAuth
// @Router /interview-questions/{id} [get]
func (c *InterviewQuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	question, err := c.questionService.GetQuestion(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, question)
}

// CreateQuestion handles posting a new question
// @Summary Create an interview question
// @Tags interview-questions
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question details"
// @Success 201 {object} models.InterviewQuestion "Question created successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /interview-questions [post]
func (c *InterviewQuestionController) CreateQuestion(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid question details: "+err.Error()))
		return
	}

	question, err := c.questionService.CreateQuestion(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, question)
}

// UpdateQuestion handles a partial question update
// @Summary Update an interview question
// @Description Merges the provided fields onto the stored question. Author only.
// @Tags interview-questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Fields to update"
// @Success 200 {object} models.InterviewQuestion "Question updated successfully"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Security BearerAuth
// @Router /interview-questions/{id} [put]
func (c *InterviewQuestionController) UpdateQuestion(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid question details: "+err.Error()))
		return
	}

	question, err := c.questionService.UpdateQuestion(ctx.Request.Context(), principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion handles removing a question
// @Summary Delete an interview question
// @Tags interview-questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse "Question deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Security BearerAuth
// @Router /interview-questions/{id} [delete]
func (c *InterviewQuestionController) DeleteQuestion(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Question deleted successfully"))
}

// ToggleUpvote flips the caller's vote on a question
// @Summary Toggle question upvote
// @Tags interview-questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.UpvoteResponse "Vote state after the toggle"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Security BearerAuth
// @Router /interview-questions/{id}/upvote [put]
func (c *InterviewQuestionController) ToggleUpvote(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.questionService.ToggleUpvote(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// AddComment appends a comment to a question
// @Summary Add a comment
// @Tags interview-questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param request body dto.AddCommentRequest true "Comment body"
// @Success 201 {object} models.Comment "Comment added"
// @Failure 400 {object} dto.ErrorResponse "Empty comment"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Security BearerAuth
// @Router /interview-questions/{id}/comments [post]
func (c *InterviewQuestionController) AddComment(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Comment text is required"))
		return
	}

	comment, err := c.questionService.AddComment(ctx.Request.Context(), principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, comment)
}

// DeleteComment removes a comment from a question
// @Summary Delete a comment
// @Description Removes a comment. Comment author or admin only.
// @Tags interview-questions
// @Produce json
// @Param id path int true "Question ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} dto.MessageResponse "Comment deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the comment author"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Security BearerAuth
// @Router /interview-questions/{id}/comments/{commentId} [delete]
func (c *InterviewQuestionController) DeleteComment(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	questionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(ctx, "commentId")
	if !ok {
		return
	}

	if err := c.questionService.DeleteComment(ctx.Request.Context(), principal, questionID, commentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Comment deleted successfully"))
}
