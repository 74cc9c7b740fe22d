package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforum/qaforum-go/internal/crypto"
	"github.com/qaforum/qaforum-go/internal/model"
)

type verifierFunc func(string) (model.Session, error)

func (f verifierFunc) Verify(token string) (model.Session, error) { return f(token) }

func sessionEcho(t *testing.T, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		session, ok := SessionFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Account", strconv.FormatInt(session.AccountID, 10))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthorize(t *testing.T) {
	verifier := verifierFunc(func(token string) (model.Session, error) {
		if token == "good" {
			return model.Session{AccountID: 7}, nil
		}
		return model.Session{}, crypto.ErrInvalidToken
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "bare token", header: "good", wantStatus: http.StatusOK},
		{name: "bearer token", header: "Bearer good", wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "bearer without token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "bad", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			h := Authorize(verifier)(sessionEcho(t, &called))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "7", rec.Header().Get("X-Account"))
			}
		})
	}
}

func TestAuthorize_UniformRejection(t *testing.T) {
	failures := []error{crypto.ErrInvalidToken, crypto.ErrTokenFormat, crypto.ErrTokenExpired, errors.New("other")}

	var bodies []string
	for _, failure := range failures {
		h := Authorize(verifierFunc(func(string) (model.Session, error) {
			return model.Session{}, failure
		}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}

	for _, body := range bodies[1:] {
		assert.Equal(t, bodies[0], body)
	}
	assert.JSONEq(t, `{"error":"invalid or expired token"}`, bodies[0])
}

func TestAuthorize_WithTokenCodec(t *testing.T) {
	codec, err := crypto.NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)

	token, err := codec.Issue(3)
	require.NoError(t, err)

	var got model.Session
	h := Authorize(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), got.AccountID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), got.Expiration, 5*time.Second)
}

func TestSessionFromContext_Missing(t *testing.T) {
	_, ok := SessionFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
