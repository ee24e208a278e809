package auth

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

func TestNewPKCE(t *testing.T) {
	pkce := NewPKCE()

	// RFC 7636 requires 43-128 characters
	if len(pkce.Verifier) < 43 || len(pkce.Verifier) > 128 {
		t.Errorf("Verifier length = %d, want 43-128", len(pkce.Verifier))
	}

	if pkce.Challenge != oauth2.S256ChallengeFromVerifier(pkce.Verifier) {
		t.Error("Challenge does not match verifier")
	}

	if _, err := uuid.Parse(pkce.State); err != nil {
		t.Errorf("State %q is not a UUID: %v", pkce.State, err)
	}
}

func TestNewPKCEUnique(t *testing.T) {
	a := NewPKCE()
	b := NewPKCE()

	if a.Verifier == b.Verifier {
		t.Error("two verifiers should differ")
	}
	if a.State == b.State {
		t.Error("two states should differ")
	}
}
