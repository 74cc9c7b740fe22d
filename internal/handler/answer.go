package handler

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/qaforum/qaforum-go/internal/apperr"
	"github.com/qaforum/qaforum-go/internal/middleware"
	"github.com/qaforum/qaforum-go/internal/model"
	"github.com/qaforum/qaforum-go/internal/service"
)

// AnswerHandler handles HTTP requests for answers.
type AnswerHandler struct {
	service *service.AnswerService
}

// NewAnswerHandler creates a new AnswerHandler.
func NewAnswerHandler(svc *service.AnswerService) *AnswerHandler {
	return &AnswerHandler{service: svc}
}

// HandleAdd handles POST /answers requests. The body is either JSON or a
// url-encoded form with content and question_id fields.
func (h *AnswerHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse(msgInvalidToken))
		return
	}

	var req model.NewAnswer
	if isForm(r) {
		if !decodeForm(w, r, &req) {
			return
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.service.Add(r.Context(), session, req); err != nil {
		writeError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, "Answer added")
}

func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}

func decodeForm(w http.ResponseWriter, r *http.Request, req *model.NewAnswer) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse(errBodyTooLarge.Error()))
			return false
		}
		writeError(w, r, errInvalidBody)
		return false
	}

	req.Content = r.PostForm.Get("content")
	if raw := r.PostForm.Get("question_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, apperr.New(apperr.KindValidation, "cannot parse parameter: question_id"))
			return false
		}
		req.QuestionID = id
	}

	return validateRequest(w, r, req)
}
