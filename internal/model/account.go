package model

import "time"

// Account represents a registered account in the database.
// Password holds the encoded Argon2id hash once the account is persisted.
type Account struct {
	ID       int64
	Email    string
	Password string
}

// Credentials represents a registration or login request.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the authenticated identity proven by a verified token.
// It lives for the duration of one request and is never persisted.
type Session struct {
	AccountID  int64
	Expiration time.Time
}
