package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/qaforum/qaforum-go/internal/model"
)

var ErrQuestionNotFound = errors.New("question not found")

// maxRows stands in for "no limit"; MySQL has no LIMIT ALL.
const maxRows = "18446744073709551615"

// QuestionRepository handles question persistence operations.
type QuestionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// List returns questions ordered by id, windowed by p.
func (r *QuestionRepository) List(ctx context.Context, p model.Pagination) ([]model.Question, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if p.Limit != nil {
		query := `SELECT id, title, content, tags FROM questions ORDER BY id LIMIT ? OFFSET ?`
		rows, err = r.db.QueryContext(ctx, query, *p.Limit, p.Offset)
	} else {
		query := `SELECT id, title, content, tags FROM questions ORDER BY id LIMIT ` + maxRows + ` OFFSET ?`
		rows, err = r.db.QueryContext(ctx, query, p.Offset)
	}
	if err != nil {
		return nil, errors.Wrap(err, "select questions")
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var (
			q    model.Question
			tags sql.NullString
		)
		if err := rows.Scan(&q.ID, &q.Title, &q.Content, &tags); err != nil {
			return nil, errors.Wrap(err, "scan question")
		}
		if q.Tags, err = decodeTags(tags); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate questions")
	}

	return questions, nil
}

// Create inserts a question owned by accountID.
func (r *QuestionRepository) Create(ctx context.Context, q model.NewQuestion, accountID int64) (model.Question, error) {
	tags, err := encodeTags(q.Tags)
	if err != nil {
		return model.Question{}, err
	}

	query := `INSERT INTO questions (title, content, tags, account_id) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, q.Title, q.Content, tags, accountID)
	if err != nil {
		return model.Question{}, errors.Wrap(err, "insert question")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Question{}, errors.Wrap(err, "read question id")
	}

	return model.Question{ID: id, Title: q.Title, Content: q.Content, Tags: q.Tags}, nil
}

// Update overwrites question id if it is owned by accountID. Ownership is
// expected to be checked by the caller beforehand; MySQL reports zero
// affected rows for an unchanged row, so the count is not inspected.
func (r *QuestionRepository) Update(ctx context.Context, q model.Question, id, accountID int64) (model.Question, error) {
	tags, err := encodeTags(q.Tags)
	if err != nil {
		return model.Question{}, err
	}

	query := `UPDATE questions SET title = ?, content = ?, tags = ? WHERE id = ? AND account_id = ?`

	if _, err := r.db.ExecContext(ctx, query, q.Title, q.Content, tags, id, accountID); err != nil {
		return model.Question{}, errors.Wrap(err, "update question")
	}

	q.ID = id
	return q, nil
}

// Delete removes question id if it is owned by accountID. Its answers are
// removed by the foreign key cascade.
func (r *QuestionRepository) Delete(ctx context.Context, id, accountID int64) error {
	query := `DELETE FROM questions WHERE id = ? AND account_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return errors.Wrap(err, "delete question")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "read affected rows")
	}
	if n == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

// IsOwner reports whether question id belongs to accountID.
func (r *QuestionRepository) IsOwner(ctx context.Context, id, accountID int64) (bool, error) {
	query := `SELECT account_id FROM questions WHERE id = ?`

	var owner int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrQuestionNotFound
		}
		return false, errors.Wrap(err, "select question owner")
	}

	return owner == accountID, nil
}

func encodeTags(tags []string) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, errors.Wrap(err, "encode tags")
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeTags(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil, errors.Wrap(err, "decode tags")
	}
	return tags, nil
}
