package password

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Password123!")
	if err != nil {
		t.Fatalf("Hash error = %v", err)
	}
	if !Verify("Password123!", hash) {
		t.Error("Verify rejected the original password")
	}
	if Verify("wrong-password", hash) {
		t.Error("Verify accepted a wrong password")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"accepts minimum length", strings.Repeat("a", MinLength), nil},
		{"accepts longer password", "Password123!", nil},
		{"rejects short password", "short1!", ErrTooShort},
		{"rejects empty password", "", ErrTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePassword(tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	if len(a) != 64 {
		t.Fatalf("digest length = %d, want 64", len(a))
	}
	if a != HashToken("token-a") {
		t.Error("digest is not deterministic")
	}
	if a == HashToken("token-b") {
		t.Error("distinct tokens produced the same digest")
	}
}
