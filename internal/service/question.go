package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/qaforum/qaforum-go/internal/apperr"
	"github.com/qaforum/qaforum-go/internal/model"
	"github.com/qaforum/qaforum-go/internal/repository"
)

var (
	ErrTitleRequired    = apperr.New(apperr.KindValidation, "title is required")
	ErrContentRequired  = apperr.New(apperr.KindValidation, "content is required")
	ErrQuestionNotFound = apperr.New(apperr.KindNotFound, "question not found")
	ErrNotOwner         = apperr.New(apperr.KindForbidden, "no permission to change the underlying resource")
)

// QuestionStore persists questions.
type QuestionStore interface {
	List(ctx context.Context, p model.Pagination) ([]model.Question, error)
	Create(ctx context.Context, q model.NewQuestion, accountID int64) (model.Question, error)
	Update(ctx context.Context, q model.Question, id, accountID int64) (model.Question, error)
	Delete(ctx context.Context, id, accountID int64) error
	IsOwner(ctx context.Context, id, accountID int64) (bool, error)
}

// QuestionService handles question business logic.
type QuestionService struct {
	store  QuestionStore
	censor Censor
	logger *slog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(store QuestionStore, censor Censor, logger *slog.Logger) *QuestionService {
	return &QuestionService{store: store, censor: censor, logger: logger}
}

// List returns a page of questions. It needs no session.
func (s *QuestionService) List(ctx context.Context, p model.Pagination) ([]model.Question, error) {
	return s.store.List(ctx, p)
}

// Add censors and stores a new question owned by the session's account.
// Nothing is stored unless both title and content were censored.
func (s *QuestionService) Add(ctx context.Context, session model.Session, q model.NewQuestion) (model.Question, error) {
	if err := requireText(q.Title, q.Content); err != nil {
		return model.Question{}, err
	}

	title, content, err := censorPair(ctx, s.censor, q.Title, q.Content)
	if err != nil {
		s.logger.WarnContext(ctx, "question rejected by moderation", "account_id", session.AccountID, "error", err)
		return model.Question{}, err
	}

	q.Title, q.Content = title, content
	return s.store.Create(ctx, q, session.AccountID)
}

// Update replaces question id. Only its owner may change it.
func (s *QuestionService) Update(ctx context.Context, session model.Session, id int64, q model.Question) (model.Question, error) {
	if err := s.checkOwner(ctx, session, id); err != nil {
		return model.Question{}, err
	}
	if err := requireText(q.Title, q.Content); err != nil {
		return model.Question{}, err
	}

	title, content, err := censorPair(ctx, s.censor, q.Title, q.Content)
	if err != nil {
		s.logger.WarnContext(ctx, "question update rejected by moderation", "question_id", id, "error", err)
		return model.Question{}, err
	}

	q.Title, q.Content = title, content
	return s.store.Update(ctx, q, id, session.AccountID)
}

// Delete removes question id. Only its owner may delete it.
func (s *QuestionService) Delete(ctx context.Context, session model.Session, id int64) error {
	if err := s.checkOwner(ctx, session, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id, session.AccountID); err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	return nil
}

func (s *QuestionService) checkOwner(ctx context.Context, session model.Session, id int64) error {
	owner, err := s.store.IsOwner(ctx, id, session.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	if !owner {
		return ErrNotOwner
	}
	return nil
}

func requireText(title, content string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if content == "" {
		return ErrContentRequired
	}
	return nil
}
