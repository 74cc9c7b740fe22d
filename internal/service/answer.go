package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/qaforum/qaforum-go/internal/apperr"
	"github.com/qaforum/qaforum-go/internal/model"
	"github.com/qaforum/qaforum-go/internal/repository"
)

var ErrQuestionIDRequired = apperr.New(apperr.KindValidation, "question_id is required")

// AnswerStore persists answers.
type AnswerStore interface {
	Create(ctx context.Context, a model.NewAnswer, accountID int64) (model.Answer, error)
}

// AnswerService handles answer business logic.
type AnswerService struct {
	store  AnswerStore
	censor Censor
	logger *slog.Logger
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(store AnswerStore, censor Censor, logger *slog.Logger) *AnswerService {
	return &AnswerService{store: store, censor: censor, logger: logger}
}

// Add censors and stores an answer to an existing question.
func (s *AnswerService) Add(ctx context.Context, session model.Session, a model.NewAnswer) (model.Answer, error) {
	if a.Content == "" {
		return model.Answer{}, ErrContentRequired
	}
	if a.QuestionID <= 0 {
		return model.Answer{}, ErrQuestionIDRequired
	}

	content, err := s.censor.Censor(ctx, a.Content)
	if err != nil {
		s.logger.WarnContext(ctx, "answer rejected by moderation", "question_id", a.QuestionID, "error", err)
		return model.Answer{}, err
	}
	a.Content = content

	answer, err := s.store.Create(ctx, a, session.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return model.Answer{}, ErrQuestionNotFound
		}
		return model.Answer{}, err
	}

	return answer, nil
}
