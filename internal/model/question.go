package model

// Question represents a question as stored and returned by the API.
type Question struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// NewQuestion represents a question creation or update request.
type NewQuestion struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

// Pagination selects a window of questions. A nil Limit returns every row
// from Offset onwards.
type Pagination struct {
	Limit  *int
	Offset int
}
