package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/qaforum/qaforum-go/internal/middleware"
	"github.com/qaforum/qaforum-go/internal/service"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Accounts  *service.AccountService
	Questions *service.QuestionService
	Answers   *service.AnswerService
}

// NewRouter wires every route. Routes that change data require a session
// token verified by verifier.
func NewRouter(svc Services, verifier middleware.TokenVerifier, logger *slog.Logger) http.Handler {
	accounts := NewAccountHandler(svc.Accounts)
	questions := NewQuestionHandler(svc.Questions)
	answers := NewAnswerHandler(svc.Answers)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, "ok")
	})

	r.Post("/registration", accounts.HandleRegister)
	r.Post("/login", accounts.HandleLogin)
	r.Get("/questions", questions.HandleList)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authorize(verifier))

		r.Post("/questions", questions.HandleAdd)
		r.Put("/questions/{id}", questions.HandleUpdate)
		r.Delete("/questions/{id}", questions.HandleDelete)
		r.Post("/answers", answers.HandleAdd)
	})

	return r
}
