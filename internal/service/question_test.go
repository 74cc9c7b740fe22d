package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforum/qaforum-go/internal/apperr"
	"github.com/qaforum/qaforum-go/internal/model"
	"github.com/qaforum/qaforum-go/internal/repository"
)

type fakeQuestionStore struct {
	owner     map[int64]int64
	created   []model.NewQuestion
	updated   []model.Question
	deleted   []int64
	listed    model.Pagination
	questions []model.Question
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{owner: map[int64]int64{}}
}

func (f *fakeQuestionStore) List(ctx context.Context, p model.Pagination) ([]model.Question, error) {
	f.listed = p
	return f.questions, nil
}

func (f *fakeQuestionStore) Create(ctx context.Context, q model.NewQuestion, accountID int64) (model.Question, error) {
	f.created = append(f.created, q)
	id := int64(len(f.created))
	f.owner[id] = accountID
	return model.Question{ID: id, Title: q.Title, Content: q.Content, Tags: q.Tags}, nil
}

func (f *fakeQuestionStore) Update(ctx context.Context, q model.Question, id, accountID int64) (model.Question, error) {
	f.updated = append(f.updated, q)
	q.ID = id
	return q, nil
}

func (f *fakeQuestionStore) Delete(ctx context.Context, id, accountID int64) error {
	if _, ok := f.owner[id]; !ok {
		return repository.ErrQuestionNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeQuestionStore) IsOwner(ctx context.Context, id, accountID int64) (bool, error) {
	owner, ok := f.owner[id]
	if !ok {
		return false, repository.ErrQuestionNotFound
	}
	return owner == accountID, nil
}

var alice = model.Session{AccountID: 1}

func TestQuestionList(t *testing.T) {
	store := newFakeQuestionStore()
	store.questions = []model.Question{{ID: 1, Title: "t", Content: "c"}}
	svc := NewQuestionService(store, &fakeCensor{}, discardLogger())

	limit := 5
	got, err := svc.List(context.Background(), model.Pagination{Limit: &limit, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 2, store.listed.Offset)
}

func TestQuestionAdd_Censors(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewQuestionService(store, &fakeCensor{}, discardLogger())

	got, err := svc.Add(context.Background(), alice, model.NewQuestion{Title: "darn it", Content: "what the darn", Tags: []string{"faq"}})
	require.NoError(t, err)
	assert.Equal(t, "**** it", got.Title)
	assert.Equal(t, "what the ****", got.Content)
	assert.Equal(t, []string{"faq"}, got.Tags)
	require.Len(t, store.created, 1)
	assert.Equal(t, "**** it", store.created[0].Title)
}

func TestQuestionAdd_Validation(t *testing.T) {
	store := newFakeQuestionStore()
	censor := &fakeCensor{}
	svc := NewQuestionService(store, censor, discardLogger())

	_, err := svc.Add(context.Background(), alice, model.NewQuestion{Content: "c"})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Add(context.Background(), alice, model.NewQuestion{Title: "t"})
	assert.ErrorIs(t, err, ErrContentRequired)

	assert.Zero(t, censor.callCount())
	assert.Empty(t, store.created)
}

func TestQuestionAdd_AllOrNothing(t *testing.T) {
	boom := errors.New("moderation down")

	tests := []struct {
		name string
		q    model.NewQuestion
	}{
		{name: "title fails", q: model.NewQuestion{Title: "bad", Content: "fine"}},
		{name: "content fails", q: model.NewQuestion{Title: "fine", Content: "bad"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeQuestionStore()
			svc := NewQuestionService(store, &fakeCensor{fail: map[string]error{"bad": boom}}, discardLogger())

			_, err := svc.Add(context.Background(), alice, tt.q)
			assert.ErrorIs(t, err, boom)
			assert.Empty(t, store.created, "nothing may be persisted")
		})
	}
}

func TestQuestionUpdate(t *testing.T) {
	store := newFakeQuestionStore()
	store.owner[7] = alice.AccountID
	svc := NewQuestionService(store, &fakeCensor{}, discardLogger())

	got, err := svc.Update(context.Background(), alice, 7, model.Question{Title: "new darn", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, model.Question{ID: 7, Title: "new ****", Content: "body"}, got)
}

func TestQuestionUpdate_AllOrNothing(t *testing.T) {
	boom := errors.New("moderation down")
	store := newFakeQuestionStore()
	store.owner[7] = alice.AccountID
	svc := NewQuestionService(store, &fakeCensor{fail: map[string]error{"bad": boom}}, discardLogger())

	_, err := svc.Update(context.Background(), alice, 7, model.Question{Title: "ok", Content: "bad"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.updated)
}

func TestQuestionUpdate_Ownership(t *testing.T) {
	store := newFakeQuestionStore()
	store.owner[7] = 2
	censor := &fakeCensor{}
	svc := NewQuestionService(store, censor, discardLogger())

	_, err := svc.Update(context.Background(), alice, 7, model.Question{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Zero(t, censor.callCount(), "moderation is not called for a foreign question")

	_, err = svc.Update(context.Background(), alice, 99, model.Question{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestQuestionDelete(t *testing.T) {
	store := newFakeQuestionStore()
	store.owner[7] = alice.AccountID
	store.owner[8] = 2
	svc := NewQuestionService(store, &fakeCensor{}, discardLogger())

	require.NoError(t, svc.Delete(context.Background(), alice, 7))
	assert.Equal(t, []int64{7}, store.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), alice, 8), ErrNotOwner)
	assert.ErrorIs(t, svc.Delete(context.Background(), alice, 9), ErrQuestionNotFound)
}
