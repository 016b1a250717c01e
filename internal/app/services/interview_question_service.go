package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/arjun/placementhub/internal/app/auth"
	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/listing"
	"github.com/arjun/placementhub/internal/pkg/logger"
)

// QuestionStore is the persistence surface the interview question service needs.
type QuestionStore interface {
	List(ctx context.Context, q listing.Query) ([]models.InterviewQuestion, int64, error)
	GetByID(ctx context.Context, id int64) (*models.InterviewQuestion, error)
	Create(ctx context.Context, question *models.InterviewQuestion) (int64, error)
	Update(ctx context.Context, question *models.InterviewQuestion) error
	Delete(ctx context.Context, id int64) error
	ToggleUpvote(ctx context.Context, questionID, userID int64) (int, bool, error)
	AddComment(ctx context.Context, questionID, userID int64, text string) (*models.Comment, error)
	GetCommentByID(ctx context.Context, commentID int64) (userID int64, questionID int64, err error)
	DeleteComment(ctx context.Context, commentID int64) error
}

// InterviewQuestionService defines interview question operations
type InterviewQuestionService interface {
	ListQuestions(ctx context.Context, q listing.Query) (*dto.QuestionListResponse, error)
	GetQuestion(ctx context.Context, id int64) (*models.InterviewQuestion, error)
	CreateQuestion(ctx context.Context, actor *auth.Principal, req *dto.CreateQuestionRequest) (*models.InterviewQuestion, error)
	UpdateQuestion(ctx context.Context, actor *auth.Principal, id int64, req *dto.UpdateQuestionRequest) (*models.InterviewQuestion, error)
	DeleteQuestion(ctx context.Context, actor *auth.Principal, id int64) error
	ToggleUpvote(ctx context.Context, actor *auth.Principal, id int64) (*dto.UpvoteResponse, error)
	AddComment(ctx context.Context, actor *auth.Principal, id int64, req *dto.AddCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, actor *auth.Principal, questionID, commentID int64) error
}

type interviewQuestionService struct {
	questions QuestionStore
}

// NewInterviewQuestionService creates a new InterviewQuestionService
func NewInterviewQuestionService(questions QuestionStore) InterviewQuestionService {
	return &interviewQuestionService{questions: questions}
}

// NormalizeTags trims whitespace and drops empty entries, preserving order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (s *interviewQuestionService) ListQuestions(ctx context.Context, q listing.Query) (*dto.QuestionListResponse, error) {
	questions, total, err := s.questions.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &dto.QuestionListResponse{
		Items:    questions,
		PageInfo: listing.NewPageInfo(total, q),
	}, nil
}

func (s *interviewQuestionService) GetQuestion(ctx context.Context, id int64) (*models.InterviewQuestion, error) {
	return s.questions.GetByID(ctx, id)
}

func (s *interviewQuestionService) CreateQuestion(ctx context.Context, actor *auth.Principal, req *dto.CreateQuestionRequest) (*models.InterviewQuestion, error) {
	if !models.IsValidRoundType(req.RoundType) {
		return nil, apperrors.NewValidationError("Invalid round type")
	}
	if !models.IsValidDifficulty(req.Difficulty) {
		return nil, apperrors.NewValidationError("Invalid difficulty")
	}

	question := &models.InterviewQuestion{
		Company:         req.Company,
		JobRole:         req.JobRole,
		DriveYear:       req.DriveYear,
		RoundType:       req.RoundType,
		Difficulty:      req.Difficulty,
		QuestionTitle:   req.QuestionTitle,
		QuestionContent: req.QuestionContent,
		AnswerHint:      req.AnswerHint,
		Tags:            NormalizeTags(req.Tags),
		PostedByID:      actor.ID,
		IsAnonymous:     req.IsAnonymous,
	}

	id, err := s.questions.Create(ctx, question)
	if err != nil {
		return nil, err
	}

	return s.questions.GetByID(ctx, id)
}

// UpdateQuestion merges the partial update and persists. Updates are
// owner-only: admins may delete questions but not rewrite someone's post.
func (s *interviewQuestionService) UpdateQuestion(ctx context.Context, actor *auth.Principal, id int64, req *dto.UpdateQuestionRequest) (*models.InterviewQuestion, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsOwner(question.PostedByID) {
		return nil, apperrors.NewForbiddenError("Only the author can update this question")
	}

	if req.Company != nil {
		question.Company = *req.Company
	}
	if req.JobRole != nil {
		question.JobRole = *req.JobRole
	}
	if req.DriveYear != nil {
		question.DriveYear = *req.DriveYear
	}
	if req.RoundType != nil {
		if !models.IsValidRoundType(*req.RoundType) {
			return nil, apperrors.NewValidationError("Invalid round type")
		}
		question.RoundType = *req.RoundType
	}
	if req.Difficulty != nil {
		if !models.IsValidDifficulty(*req.Difficulty) {
			return nil, apperrors.NewValidationError("Invalid difficulty")
		}
		question.Difficulty = *req.Difficulty
	}
	if req.QuestionTitle != nil {
		question.QuestionTitle = *req.QuestionTitle
	}
	if req.QuestionContent != nil {
		question.QuestionContent = *req.QuestionContent
	}
	if req.AnswerHint != nil {
		question.AnswerHint = *req.AnswerHint
	}
	if req.Tags != nil {
		question.Tags = NormalizeTags(*req.Tags)
	}
	if req.IsAnonymous != nil {
		question.IsAnonymous = *req.IsAnonymous
	}

	if err := s.questions.Update(ctx, question); err != nil {
		return nil, err
	}

	return s.questions.GetByID(ctx, id)
}

func (s *interviewQuestionService) DeleteQuestion(ctx context.Context, actor *auth.Principal, id int64) error {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.CanMutate(question.PostedByID) {
		return apperrors.NewForbiddenError("You are not allowed to delete this question")
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("questionID", id).Int64("actorID", actor.ID).Msg("Interview question deleted")
	return nil
}

// ToggleUpvote flips the caller's vote and reports the resulting state.
func (s *interviewQuestionService) ToggleUpvote(ctx context.Context, actor *auth.Principal, id int64) (*dto.UpvoteResponse, error) {
	if _, err := s.questions.GetByID(ctx, id); err != nil {
		return nil, err
	}

	count, upvoted, err := s.questions.ToggleUpvote(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}

	return &dto.UpvoteResponse{Upvotes: count, Upvoted: upvoted}, nil
}

// maxCommentLength caps comment bodies, counted in runes.
const maxCommentLength = 1000

// AddComment appends a comment. Whitespace-only and oversized bodies are
// rejected before they reach storage.
func (s *interviewQuestionService) AddComment(ctx context.Context, actor *auth.Principal, id int64, req *dto.AddCommentRequest) (*models.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.NewValidationError("Comment text cannot be empty")
	}
	if utf8.RuneCountInString(text) > maxCommentLength {
		return nil, apperrors.NewValidationError("Comment cannot exceed 1000 characters")
	}

	if _, err := s.questions.GetByID(ctx, id); err != nil {
		return nil, err
	}

	return s.questions.AddComment(ctx, id, actor.ID, text)
}

// DeleteComment removes a comment. Only the comment's author or an admin may
// delete it; a comment that does not belong to the addressed question is
// treated as not found.
func (s *interviewQuestionService) DeleteComment(ctx context.Context, actor *auth.Principal, questionID, commentID int64) error {
	authorID, parentID, err := s.questions.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if parentID != questionID {
		return apperrors.ErrCommentNotFound
	}

	if !actor.CanMutate(authorID) {
		return apperrors.NewForbiddenError("You are not allowed to delete this comment")
	}

	return s.questions.DeleteComment(ctx, commentID)
}
