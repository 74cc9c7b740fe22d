package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/qaforum/qaforum-go/internal/model"
)

// AnswerRepository handles answer persistence operations.
type AnswerRepository struct {
	db *sql.DB
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(db *sql.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Create inserts an answer written by accountID. It returns
// ErrQuestionNotFound when the referenced question does not exist.
func (r *AnswerRepository) Create(ctx context.Context, a model.NewAnswer, accountID int64) (model.Answer, error) {
	query := `INSERT INTO answers (content, question_id, account_id) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, a.Content, a.QuestionID, accountID)
	if err != nil {
		if isMySQLError(err, errNoReferencedRow) {
			return model.Answer{}, ErrQuestionNotFound
		}
		return model.Answer{}, errors.Wrap(err, "insert answer")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Answer{}, errors.Wrap(err, "read answer id")
	}

	return model.Answer{ID: id, Content: a.Content, QuestionID: a.QuestionID}, nil
}
