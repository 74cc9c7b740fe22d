package crypto

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

// cheapParams keeps the argon2 cost low so the property checks stay fast.
var cheapParams = HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 32, KeyLength: 32}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	// Verify PHC format: $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("HashPassword() expected 6 parts, got %d: %q", len(parts), hash)
	}
	if parts[1] != "argon2id" {
		t.Errorf("HashPassword() algorithm = %q, want %q", parts[1], "argon2id")
	}
	if parts[2] != "v=19" {
		t.Errorf("HashPassword() version = %q, want %q", parts[2], "v=19")
	}
	if parts[3] != "m=65536,t=3,p=2" {
		t.Errorf("HashPassword() params = %q, want %q", parts[3], "m=65536,t=3,p=2")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		t.Fatalf("salt is not base64: %v", err)
	}
	if len(salt) != 32 {
		t.Errorf("salt length = %d, want 32", len(salt))
	}
}

func TestVerifyPasswordCorrect(t *testing.T) {
	password := "my-secure-password"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	match, err := VerifyPassword(password, hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if !match {
		t.Error("VerifyPassword() returned false for correct password")
	}
}

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher(cheapParams)
	passwords := []string{"", "secret", "pässwörd", "with spaces and $ signs", strings.Repeat("x", 512)}

	for _, password := range passwords {
		hash, err := h.Hash(password)
		if err != nil {
			t.Fatalf("Hash(%q) unexpected error: %v", password, err)
		}

		match, err := h.Verify(password, hash)
		if err != nil {
			t.Fatalf("Verify(%q) unexpected error: %v", password, err)
		}
		if !match {
			t.Errorf("Verify(%q) = false, want true", password)
		}

		match, err = h.Verify(password+"!", hash)
		if err != nil {
			t.Fatalf("Verify(%q) unexpected error: %v", password+"!", err)
		}
		if match {
			t.Errorf("Verify(%q) matched the hash of %q", password+"!", password)
		}
	}
}

func TestVerifyPasswordWrong(t *testing.T) {
	hash, err := HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	match, err := VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if match {
		t.Error("VerifyPassword() returned true for wrong password")
	}
}

func TestHashPasswordProducesDifferentHashes(t *testing.T) {
	h := NewHasher(cheapParams)

	hash1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	hash2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for same password (salt should differ)")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{name: "not phc", hash: "invalid-hash-format", wantErr: ErrInvalidHashFormat},
		{name: "wrong algorithm", hash: "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrInvalidHashFormat},
		{name: "wrong version", hash: "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrIncompatibleVersion},
		{name: "bad params", hash: "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrInvalidHashFormat},
		{name: "zero rounds", hash: "$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$aGFzaA", wantErr: ErrInvalidHashFormat},
		{name: "bad salt", hash: "$argon2id$v=19$m=1024,t=1,p=1$***$aGFzaA", wantErr: ErrInvalidHashFormat},
		{name: "empty digest", hash: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$", wantErr: ErrInvalidHashFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := VerifyPassword("password", tt.hash)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("VerifyPassword() error = %v, want %v", err, tt.wantErr)
			}
			if match {
				t.Error("VerifyPassword() returned true for malformed hash")
			}
		})
	}
}
