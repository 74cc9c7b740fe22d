package model

// Answer represents an answer to a question.
type Answer struct {
	ID         int64  `json:"id"`
	Content    string `json:"content"`
	QuestionID int64  `json:"question_id"`
}

// NewAnswer represents an answer creation request. It is accepted both as
// JSON and as a url-encoded form.
type NewAnswer struct {
	Content    string `json:"content" validate:"required"`
	QuestionID int64  `json:"question_id" validate:"required,gt=0"`
}
