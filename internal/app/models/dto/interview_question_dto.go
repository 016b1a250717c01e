package dto

import (
	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/pkg/listing"
)

// CreateQuestionRequest carries a new interview question post
type CreateQuestionRequest struct {
	Company         string   `json:"company" binding:"required"`
	JobRole         string   `json:"jobRole" binding:"required"`
	DriveYear       string   `json:"driveYear" binding:"required"`
	RoundType       string   `json:"roundType" binding:"required"`
	Difficulty      string   `json:"difficulty" binding:"required"`
	QuestionTitle   string   `json:"questionTitle" binding:"required,max=200"`
	QuestionContent string   `json:"questionContent" binding:"required,max=5000"`
	AnswerHint      string   `json:"answerHint" binding:"max=3000"`
	Tags            []string `json:"tags"`
	IsAnonymous     bool     `json:"isAnonymous"`
}

// UpdateQuestionRequest carries a partial question update; nil fields are
// left untouched.
type UpdateQuestionRequest struct {
	Company         *string   `json:"company"`
	JobRole         *string   `json:"jobRole"`
	DriveYear       *string   `json:"driveYear"`
	RoundType       *string   `json:"roundType"`
	Difficulty      *string   `json:"difficulty"`
	QuestionTitle   *string   `json:"questionTitle" binding:"omitempty,max=200"`
	QuestionContent *string   `json:"questionContent" binding:"omitempty,max=5000"`
	AnswerHint      *string   `json:"answerHint" binding:"omitempty,max=3000"`
	Tags            *[]string `json:"tags"`
	IsAnonymous     *bool     `json:"isAnonymous"`
}

// QuestionListResponse is a page of interview questions plus pagination
// metadata
type QuestionListResponse struct {
	Items []models.InterviewQuestion `json:"items"`
	listing.PageInfo
}

// AddCommentRequest carries a new comment body
type AddCommentRequest struct {
	Text string `json:"text" binding:"required,max=1000"`
}

// UpvoteResponse reports the state after an upvote toggle
type UpvoteResponse struct {
	Upvotes int  `json:"upvotes" example:"3"`
	Upvoted bool `json:"upvoted" example:"true"`
}
