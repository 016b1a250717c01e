package models

import (
	"time"
)

// Round types accepted for interview question posts.
var QuestionRoundTypes = []string{"Aptitude", "Technical", "Coding", "HR", "Group Discussion", "Case Study", "Other"}

// Difficulty levels accepted for interview question posts.
var QuestionDifficulties = []string{"Easy", "Medium", "Hard"}

// IsValidRoundType reports whether v is a recognized round type.
func IsValidRoundType(v string) bool {
	return contains(QuestionRoundTypes, v)
}

// IsValidDifficulty reports whether v is a recognized difficulty.
func IsValidDifficulty(v string) bool {
	return contains(QuestionDifficulties, v)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Comment is an owned sub-entity of an interview question, stored in the
// 'question_comments' table and only ever mutated through its parent.
type Comment struct {
	ID        int64        `json:"id" db:"id"`
	UserID    int64        `json:"-" db:"user_id"`
	User      *UserSummary `json:"user,omitempty"` // Comment author projection
	Text      string       `json:"text" db:"text"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
}

// InterviewQuestion defines a peer-shared Q&A post based on the
// 'interview_questions' table
type InterviewQuestion struct {
	ID              int64        `json:"id" db:"id" example:"1"`
	Company         string       `json:"company" db:"company" example:"Meta"`
	JobRole         string       `json:"jobRole" db:"job_role" example:"SWE"`
	DriveYear       string       `json:"driveYear" db:"drive_year" example:"2024"`
	RoundType       string       `json:"roundType" db:"round_type" example:"Coding"`
	Difficulty      string       `json:"difficulty" db:"difficulty" example:"Hard"`
	QuestionTitle   string       `json:"questionTitle" db:"question_title"`
	QuestionContent string       `json:"questionContent" db:"question_content"`
	AnswerHint      string       `json:"answerHint" db:"answer_hint"`
	Tags            []string     `json:"tags" db:"tags"`
	PostedByID      int64        `json:"-" db:"posted_by"`
	PostedBy        *UserSummary `json:"postedBy,omitempty"` // Hidden when IsAnonymous
	Upvotes         []int64      `json:"upvotes"`            // User ids, one entry per user
	Comments        []Comment    `json:"comments"`
	IsAnonymous     bool         `json:"isAnonymous" db:"is_anonymous"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" db:"updated_at"`
}
