package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/qaforum/qaforum-go/internal/apperr"
	"github.com/qaforum/qaforum-go/internal/model"
)

// tokenHeader prefixes every token and is bound to the ciphertext as
// additional data, so a token cannot be replayed under another header.
const tokenHeader = "v1.local."

// DefaultTokenTTL is the lifetime of an issued session token.
const DefaultTokenTTL = 24 * time.Hour

var tokenEncoding = base64.RawURLEncoding.Strict()

var (
	ErrMissingTokenKey = apperr.New(apperr.KindInternal, "token key is not configured")
	ErrInvalidToken    = apperr.New(apperr.KindToken, "invalid token")
	ErrTokenFormat     = apperr.New(apperr.KindToken, "malformed token claims")
	ErrTokenExpired    = apperr.New(apperr.KindToken, "token expired or not yet valid")
)

// Claims is the claim set sealed inside a session token.
type Claims struct {
	jwt.RegisteredClaims
	AccountID *int64 `json:"account_id"`
}

// TokenCodec issues and verifies encrypted, expiring session tokens.
// It holds no mutable state and is safe for concurrent use.
type TokenCodec struct {
	aead      cipher.AEAD
	ttl       time.Duration
	now       func() time.Time
	validator *jwt.Validator
}

// TokenOption configures a TokenCodec.
type TokenOption func(*TokenCodec)

// WithClock replaces the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenCodec) { c.now = now }
}

// NewTokenCodec derives the encryption key from secret and returns a codec
// that issues tokens valid for ttl.
func NewTokenCodec(secret []byte, ttl time.Duration, opts ...TokenOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingTokenKey
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte("qaforum session token")), key); err != nil {
		return nil, fmt.Errorf("deriving token key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating token cipher: %w", err)
	}

	c := &TokenCodec{aead: aead, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.validator = jwt.NewValidator(
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.now),
	)

	return c, nil
}

// Issue creates a token for accountID that expires after the codec's TTL.
func (c *TokenCodec) Issue(accountID int64) (string, error) {
	now := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		AccountID: &accountID,
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encoding claims: %w", err)
	}

	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(payload)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, payload, []byte(tokenHeader))
	return tokenHeader + tokenEncoding.EncodeToString(sealed), nil
}

// Verify decrypts token and validates its time claims.
// It returns ErrInvalidToken when the token cannot be decrypted,
// ErrTokenFormat when the claims are unusable and ErrTokenExpired when the
// token is outside its validity window.
func (c *TokenCodec) Verify(token string) (model.Session, error) {
	body, ok := strings.CutPrefix(token, tokenHeader)
	if !ok {
		return model.Session{}, ErrInvalidToken
	}

	sealed, err := tokenEncoding.DecodeString(body)
	if err != nil || len(sealed) < c.aead.NonceSize()+c.aead.Overhead() {
		return model.Session{}, ErrInvalidToken
	}

	nonce, ciphertext := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]
	payload, err := c.aead.Open(nil, nonce, ciphertext, []byte(tokenHeader))
	if err != nil {
		return model.Session{}, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return model.Session{}, ErrTokenFormat
	}
	if claims.AccountID == nil {
		return model.Session{}, ErrTokenFormat
	}

	if err := c.validator.Validate(claims); err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired),
			errors.Is(err, jwt.ErrTokenNotValidYet),
			errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
			return model.Session{}, ErrTokenExpired
		default:
			return model.Session{}, ErrTokenFormat
		}
	}

	return model.Session{
		AccountID:  *claims.AccountID,
		Expiration: claims.ExpiresAt.Time,
	}, nil
}
