package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjun/placementhub/internal/app/auth"
	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/listing"
)

type fakeComment struct {
	models.Comment
	questionID int64
}

type fakeQuestionStore struct {
	questions     map[int64]*models.InterviewQuestion
	comments      map[int64]*fakeComment
	upvotes       map[int64]map[int64]bool
	nextID        int64
	nextCommentID int64
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{
		questions:     make(map[int64]*models.InterviewQuestion),
		comments:      make(map[int64]*fakeComment),
		upvotes:       make(map[int64]map[int64]bool),
		nextID:        1,
		nextCommentID: 1,
	}
}

func (f *fakeQuestionStore) List(ctx context.Context, q listing.Query) ([]models.InterviewQuestion, int64, error) {
	out := make([]models.InterviewQuestion, 0, len(f.questions))
	for _, question := range f.questions {
		out = append(out, *question)
	}
	return out, int64(len(out)), nil
}

func (f *fakeQuestionStore) GetByID(ctx context.Context, id int64) (*models.InterviewQuestion, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, apperrors.ErrQuestionNotFound
	}
	copied := *q
	return &copied, nil
}

func (f *fakeQuestionStore) Create(ctx context.Context, question *models.InterviewQuestion) (int64, error) {
	id := f.nextID
	f.nextID++
	copied := *question
	copied.ID = id
	f.questions[id] = &copied
	return id, nil
}

func (f *fakeQuestionStore) Update(ctx context.Context, question *models.InterviewQuestion) error {
	if _, ok := f.questions[question.ID]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	copied := *question
	f.questions[question.ID] = &copied
	return nil
}

func (f *fakeQuestionStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.questions[id]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionStore) ToggleUpvote(ctx context.Context, questionID, userID int64) (int, bool, error) {
	votes, ok := f.upvotes[questionID]
	if !ok {
		votes = make(map[int64]bool)
		f.upvotes[questionID] = votes
	}
	var upvoted bool
	if votes[userID] {
		delete(votes, userID)
	} else {
		votes[userID] = true
		upvoted = true
	}
	return len(votes), upvoted, nil
}

func (f *fakeQuestionStore) AddComment(ctx context.Context, questionID, userID int64, text string) (*models.Comment, error) {
	id := f.nextCommentID
	f.nextCommentID++
	c := &fakeComment{
		Comment: models.Comment{
			ID:        id,
			UserID:    userID,
			Text:      text,
			CreatedAt: time.Now(),
		},
		questionID: questionID,
	}
	f.comments[id] = c
	copied := c.Comment
	return &copied, nil
}

func (f *fakeQuestionStore) GetCommentByID(ctx context.Context, commentID int64) (int64, int64, error) {
	c, ok := f.comments[commentID]
	if !ok {
		return 0, 0, apperrors.ErrCommentNotFound
	}
	return c.UserID, c.questionID, nil
}

func (f *fakeQuestionStore) DeleteComment(ctx context.Context, commentID int64) error {
	if _, ok := f.comments[commentID]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(f.comments, commentID)
	return nil
}

func validQuestionRequest() *dto.CreateQuestionRequest {
	return &dto.CreateQuestionRequest{
		Company:         "Meta",
		JobRole:         "SWE",
		DriveYear:       "2026",
		RoundType:       "Coding",
		Difficulty:      "Hard",
		QuestionTitle:   "LRU cache",
		QuestionContent: "Design an LRU cache with O(1) operations",
		Tags:            []string{" dsa ", "", "cache"},
	}
}

func TestCreateQuestionNormalizesTags(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewInterviewQuestionService(store)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	q, err := svc.CreateQuestion(context.Background(), actor, validQuestionRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"dsa", "cache"}, q.Tags)
	assert.Equal(t, int64(1), q.PostedByID)
}

func TestCreateQuestionRejectsUnknownEnums(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewInterviewQuestionService(store)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	req := validQuestionRequest()
	req.RoundType = "Trivia"
	_, err := svc.CreateQuestion(context.Background(), actor, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = validQuestionRequest()
	req.Difficulty = "Impossible"
	_, err = svc.CreateQuestion(context.Background(), actor, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateQuestionIsOwnerOnly(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewInterviewQuestionService(store)
	owner := &auth.Principal{ID: 1, Role: "PATIENT"}
	admin := &auth.Principal{ID: 2, Role: "ADMIN"}

	q, err := svc.CreateQuestion(context.Background(), owner, validQuestionRequest())
	require.NoError(t, err)

	title := "Rewritten title"
	// Even admins cannot rewrite someone else's post
	_, err = svc.UpdateQuestion(context.Background(), admin, q.ID, &dto.UpdateQuestionRequest{QuestionTitle: &title})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.UpdateQuestion(context.Background(), owner, q.ID, &dto.UpdateQuestionRequest{QuestionTitle: &title})
	require.NoError(t, err)
	assert.Equal(t, "Rewritten title", updated.QuestionTitle)
	assert.Equal(t, "Meta", updated.Company)
}

func TestDeleteQuestionAllowsAdmin(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewInterviewQuestionService(store)
	owner := &auth.Principal{ID: 1, Role: "PATIENT"}
	stranger := &auth.Principal{ID: 2, Role: "PATIENT"}
	admin := &auth.Principal{ID: 3, Role: "ADMIN"}

	q, err := svc.CreateQuestion(context.Background(), owner, validQuestionRequest())
	require.NoError(t, err)

	err = svc.DeleteQuestion(context.Background(), stranger, q.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.DeleteQuestion(context.Background(), admin, q.ID)
	assert.NoError(t, err)
}

func TestToggleUpvoteFlipsState(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewInterviewQuestionService(store)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}
	other := &auth.Principal{ID: 2, Role: "PATIENT"}

	q, err := svc.CreateQuestion(context.Background(), actor, validQuestionRequest())
	require.NoError(t, err)

	resp, err := svc.ToggleUpvote(context.Background(), actor, q.ID)
	require.NoError(t, err)
	assert.True(t, resp.Upvoted)
	assert.Equal(t, 1, resp.Upvotes)

	resp, err = svc.ToggleUpvote(context.Background(), other, q.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Upvotes)

	// Second toggle by the same user removes the vote
	resp, err = svc.ToggleUpvote(context.Background(), actor, q.ID)
	require.NoError(t, err)
	assert.False(t, resp.Upvoted)
	assert.Equal(t, 1, resp.Upvotes)
}

func TestToggleUpvoteMissingQuestion(t *testing.T) {
	svc := NewInterviewQuestionService(newFakeQuestionStore())
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	_, err := svc.ToggleUpvote(context.Background(), actor, 99)
	assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)
}

func TestAddCommentRejectsWhitespaceOnly(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewInterviewQuestionService(store)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	q, err := svc.CreateQuestion(context.Background(), actor, validQuestionRequest())
	require.NoError(t, err)

	_, err = svc.AddComment(context.Background(), actor, q.ID, &dto.AddCommentRequest{Text: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	comment, err := svc.AddComment(context.Background(), actor, q.ID, &dto.AddCommentRequest{Text: "  nice one  "})
	require.NoError(t, err)
	assert.Equal(t, "nice one", comment.Text)
}

func TestAddCommentRejectsOversizedText(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewInterviewQuestionService(store)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	q, err := svc.CreateQuestion(context.Background(), actor, validQuestionRequest())
	require.NoError(t, err)

	_, err = svc.AddComment(context.Background(), actor, q.ID, &dto.AddCommentRequest{Text: strings.Repeat("x", 1001)})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Exactly at the limit is still fine
	comment, err := svc.AddComment(context.Background(), actor, q.ID, &dto.AddCommentRequest{Text: strings.Repeat("x", 1000)})
	require.NoError(t, err)
	assert.Len(t, comment.Text, 1000)
}

func TestDeleteCommentRules(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewInterviewQuestionService(store)
	author := &auth.Principal{ID: 1, Role: "PATIENT"}
	stranger := &auth.Principal{ID: 2, Role: "PATIENT"}
	admin := &auth.Principal{ID: 3, Role: "admin"}

	q, err := svc.CreateQuestion(context.Background(), author, validQuestionRequest())
	require.NoError(t, err)
	q2, err := svc.CreateQuestion(context.Background(), author, validQuestionRequest())
	require.NoError(t, err)

	comment, err := svc.AddComment(context.Background(), author, q.ID, &dto.AddCommentRequest{Text: "hello"})
	require.NoError(t, err)

	// Addressing the comment through the wrong parent is a not-found, so the
	// existence of comments on other questions is never leaked.
	err = svc.DeleteComment(context.Background(), author, q2.ID, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)

	err = svc.DeleteComment(context.Background(), stranger, q.ID, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.DeleteComment(context.Background(), admin, q.ID, comment.ID)
	require.NoError(t, err)

	err = svc.DeleteComment(context.Background(), admin, q.ID, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
}
