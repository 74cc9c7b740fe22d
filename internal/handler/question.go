package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/qaforum/qaforum-go/internal/apperr"
	"github.com/qaforum/qaforum-go/internal/middleware"
	"github.com/qaforum/qaforum-go/internal/model"
	"github.com/qaforum/qaforum-go/internal/service"
)

var errInvalidQuestionID = apperr.New(apperr.KindValidation, "invalid question id")

// QuestionHandler handles HTTP requests for questions.
type QuestionHandler struct {
	service *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(svc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: svc}
}

// HandleList handles GET /questions requests.
func (h *QuestionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := parsePagination(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	questions, err := h.service.List(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

// HandleAdd handles POST /questions requests.
func (h *QuestionHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse(msgInvalidToken))
		return
	}

	var req model.NewQuestion
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.service.Add(r.Context(), session, req); err != nil {
		writeError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, "Question added")
}

// HandleUpdate handles PUT /questions/{id} requests.
func (h *QuestionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse(msgInvalidToken))
		return
	}

	id, err := questionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req model.Question
	if !decodeJSON(w, r, &req) {
		return
	}

	question, err := h.service.Update(r.Context(), session, id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// HandleDelete handles DELETE /questions/{id} requests.
func (h *QuestionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse(msgInvalidToken))
		return
	}

	id, err := questionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), session, id); err != nil {
		writeError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, fmt.Sprintf("Question %d deleted", id))
}

func questionID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidQuestionID
	}
	return id, nil
}
