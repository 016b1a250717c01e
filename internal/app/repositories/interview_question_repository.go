package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/listing"
	"github.com/arjun/placementhub/internal/pkg/logger"
)

// QuestionListSpec drives list parsing for GET /interview-questions.
var QuestionListSpec = listing.Spec{
	SearchColumns:      []string{"q.company", "q.job_role", "q.question_title"},
	SearchArrayColumns: []string{"q.tags"},
	ExactFilters: map[string]string{
		"roundType":  "q.round_type",
		"difficulty": "q.difficulty",
		"driveYear":  "q.drive_year",
	},
	SubstringFilters: map[string]string{
		"company": "q.company",
	},
	SortColumns: map[string]string{
		"createdAt": "q.created_at",
		"company":   "q.company",
	},
	DefaultSortColumn: "q.created_at",
	DefaultSortOrder:  "DESC",
	DefaultLimit:      10,
}

const questionColumns = `q.id, q.company, q.job_role, q.drive_year, q.round_type, q.difficulty,
	q.question_title, q.question_content, q.answer_hint, q.tags, q.posted_by, q.is_anonymous,
	q.created_at, q.updated_at,
	u.id, u.name, u.profile_url,
	ARRAY(SELECT uv.user_id FROM question_upvotes uv WHERE uv.question_id = q.id ORDER BY uv.user_id)`

// InterviewQuestionRepository handles interview question database operations,
// including the comment and upvote child tables.
type InterviewQuestionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInterviewQuestionRepository creates a new InterviewQuestionRepository
func NewInterviewQuestionRepository(db *pgxpool.Pool) *InterviewQuestionRepository {
	return &InterviewQuestionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanQuestion(row pgx.Row) (*models.InterviewQuestion, error) {
	var q models.InterviewQuestion
	var owner models.UserSummary
	var profileURL *string

	err := row.Scan(
		&q.ID, &q.Company, &q.JobRole, &q.DriveYear, &q.RoundType, &q.Difficulty,
		&q.QuestionTitle, &q.QuestionContent, &q.AnswerHint, &q.Tags, &q.PostedByID, &q.IsAnonymous,
		&q.CreatedAt, &q.UpdatedAt,
		&owner.ID, &owner.Name, &profileURL,
		&q.Upvotes,
	)
	if err != nil {
		return nil, err
	}

	if q.Tags == nil {
		q.Tags = []string{}
	}
	if q.Upvotes == nil {
		q.Upvotes = []int64{}
	}
	q.Comments = []models.Comment{}
	if !q.IsAnonymous {
		if profileURL != nil {
			owner.Profile = *profileURL
		}
		q.PostedBy = &owner
	}
	return &q, nil
}

// List returns one page of questions with upvote lists and comments loaded,
// plus the total row count for the same predicate.
func (r *InterviewQuestionRepository) List(ctx context.Context, q listing.Query) ([]models.InterviewQuestion, int64, error) {
	where := listing.Where(QuestionListSpec, q)

	countBuilder := r.sb.Select("COUNT(*)").From("interview_questions q")
	if where != nil {
		countBuilder = countBuilder.Where(where)
	}
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build questions count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting interview questions")
		return nil, 0, fmt.Errorf("error counting interview questions: %w", err)
	}

	pageBuilder := r.sb.Select(questionColumns).
		From("interview_questions q").
		Join("users u ON u.id = q.posted_by")
	if where != nil {
		pageBuilder = pageBuilder.Where(where)
	}
	pageSQL, pageArgs, err := listing.OrderAndPage(pageBuilder, q).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build questions page query: %w", err)
	}

	rows, err := r.db.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying interview questions")
		return nil, 0, fmt.Errorf("error querying interview questions: %w", err)
	}
	defer rows.Close()

	questions := make([]models.InterviewQuestion, 0, q.Limit)
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning question row: %w", err)
		}
		questions = append(questions, *question)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating question rows: %w", err)
	}

	if err := r.attachComments(ctx, questions); err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

// attachComments loads the comments of every question in the page with one
// batched query and distributes them in creation order.
func (r *InterviewQuestionRepository) attachComments(ctx context.Context, questions []models.InterviewQuestion) error {
	if len(questions) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(questions))
	index := make(map[int64]int, len(questions))
	for i := range questions {
		ids = append(ids, questions[i].ID)
		index[questions[i].ID] = i
	}

	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.question_id, c.user_id, c.text, c.created_at, u.name, u.profile_url
		FROM question_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.question_id = ANY($1)
		ORDER BY c.created_at ASC, c.id ASC`, ids)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying question comments")
		return fmt.Errorf("error querying question comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Comment
		var questionID int64
		var user models.UserSummary
		var profileURL *string
		if err := rows.Scan(&c.ID, &questionID, &c.UserID, &c.Text, &c.CreatedAt, &user.Name, &profileURL); err != nil {
			return fmt.Errorf("error scanning comment row: %w", err)
		}
		user.ID = c.UserID
		if profileURL != nil {
			user.Profile = *profileURL
		}
		c.User = &user
		if i, ok := index[questionID]; ok {
			questions[i].Comments = append(questions[i].Comments, c)
		}
	}
	return rows.Err()
}

// GetByID retrieves a single question with upvotes and comments loaded
func (r *InterviewQuestionRepository) GetByID(ctx context.Context, id int64) (*models.InterviewQuestion, error) {
	sql, args, err := r.sb.Select(questionColumns).
		From("interview_questions q").
		Join("users u ON u.id = q.posted_by").
		Where(squirrel.Eq{"q.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get question query: %w", err)
	}

	question, err := scanQuestion(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		logger.Error().Err(err).Int64("questionID", id).Msg("Error querying interview question")
		return nil, fmt.Errorf("error querying interview question ID=%d: %w", id, err)
	}

	page := []models.InterviewQuestion{*question}
	if err := r.attachComments(ctx, page); err != nil {
		return nil, err
	}
	return &page[0], nil
}

// Create inserts a new question and returns its id
func (r *InterviewQuestionRepository) Create(ctx context.Context, question *models.InterviewQuestion) (int64, error) {
	sql, args, err := r.sb.Insert("interview_questions").
		Columns("company", "job_role", "drive_year", "round_type", "difficulty",
			"question_title", "question_content", "answer_hint", "tags", "posted_by", "is_anonymous").
		Values(question.Company, question.JobRole, question.DriveYear, question.RoundType, question.Difficulty,
			question.QuestionTitle, question.QuestionContent, question.AnswerHint, question.Tags,
			question.PostedByID, question.IsAnonymous).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create question query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("company", question.Company).Msg("Error inserting interview question")
		return 0, fmt.Errorf("error inserting interview question: %w", err)
	}

	logger.Info().Int64("questionID", id).Msg("Interview question created successfully")
	return id, nil
}

// Update persists the full merged question state
func (r *InterviewQuestionRepository) Update(ctx context.Context, question *models.InterviewQuestion) error {
	sql, args, err := r.sb.Update("interview_questions").
		SetMap(map[string]interface{}{
			"company":          question.Company,
			"job_role":         question.JobRole,
			"drive_year":       question.DriveYear,
			"round_type":       question.RoundType,
			"difficulty":       question.Difficulty,
			"question_title":   question.QuestionTitle,
			"question_content": question.QuestionContent,
			"answer_hint":      question.AnswerHint,
			"tags":             question.Tags,
			"is_anonymous":     question.IsAnonymous,
			"updated_at":       time.Now(),
		}).
		Where(squirrel.Eq{"id": question.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update question query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", question.ID).Msg("Error updating interview question")
		return fmt.Errorf("error updating interview question ID=%d: %w", question.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}

// Delete removes a question; comments and upvotes go with it via ON DELETE CASCADE.
func (r *InterviewQuestionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM interview_questions WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", id).Msg("Error deleting interview question")
		return fmt.Errorf("error deleting interview question ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	logger.Info().Int64("questionID", id).Msg("Interview question deleted successfully")
	return nil
}

// ToggleUpvote flips the caller's upvote on a question. The insert-or-delete
// pair is race-safe: concurrent toggles by the same user settle on one of the
// two valid states and the count never drifts. Returns the new vote count and
// whether the user's vote is now present.
func (r *InterviewQuestionRepository) ToggleUpvote(ctx context.Context, questionID, userID int64) (int, bool, error) {
	cmdTag, err := r.db.Exec(ctx, `
		INSERT INTO question_upvotes (question_id, user_id) VALUES ($1, $2)
		ON CONFLICT (question_id, user_id) DO NOTHING`, questionID, userID)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", questionID).Msg("Error inserting question upvote")
		return 0, false, fmt.Errorf("error toggling question upvote: %w", err)
	}

	upvoted := cmdTag.RowsAffected() == 1
	if !upvoted {
		if _, err := r.db.Exec(ctx,
			"DELETE FROM question_upvotes WHERE question_id = $1 AND user_id = $2",
			questionID, userID); err != nil {
			logger.Error().Err(err).Int64("questionID", questionID).Msg("Error removing question upvote")
			return 0, false, fmt.Errorf("error toggling question upvote: %w", err)
		}
	}

	var count int
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM question_upvotes WHERE question_id = $1", questionID).Scan(&count); err != nil {
		return 0, false, fmt.Errorf("error counting question upvotes: %w", err)
	}
	return count, upvoted, nil
}

// AddComment appends a comment to a question and returns it with the author
// projection filled in.
func (r *InterviewQuestionRepository) AddComment(ctx context.Context, questionID, userID int64, text string) (*models.Comment, error) {
	var c models.Comment
	err := r.db.QueryRow(ctx, `
		INSERT INTO question_comments (question_id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, text, created_at`, questionID, userID, text).
		Scan(&c.ID, &c.UserID, &c.Text, &c.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", questionID).Msg("Error inserting comment")
		return nil, fmt.Errorf("error inserting comment: %w", err)
	}

	var user models.UserSummary
	var profileURL *string
	err = r.db.QueryRow(ctx,
		"SELECT id, name, profile_url FROM users WHERE id = $1", userID).
		Scan(&user.ID, &user.Name, &profileURL)
	if err == nil {
		if profileURL != nil {
			user.Profile = *profileURL
		}
		c.User = &user
	}
	return &c, nil
}

// GetCommentByID returns the author and parent question of a comment.
func (r *InterviewQuestionRepository) GetCommentByID(ctx context.Context, commentID int64) (userID int64, questionID int64, err error) {
	err = r.db.QueryRow(ctx,
		"SELECT user_id, question_id FROM question_comments WHERE id = $1", commentID).
		Scan(&userID, &questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, apperrors.ErrCommentNotFound
		}
		logger.Error().Err(err).Int64("commentID", commentID).Msg("Error querying comment")
		return 0, 0, fmt.Errorf("error querying comment ID=%d: %w", commentID, err)
	}
	return userID, questionID, nil
}

// DeleteComment removes a single comment by id
func (r *InterviewQuestionRepository) DeleteComment(ctx context.Context, commentID int64) error {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM question_comments WHERE id = $1", commentID)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", commentID).Msg("Error deleting comment")
		return fmt.Errorf("error deleting comment ID=%d: %w", commentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}
