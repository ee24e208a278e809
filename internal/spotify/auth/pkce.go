package auth

import (
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// PKCE holds the code verifier, its challenge, and the CSRF state for one
// authorization attempt.
type PKCE struct {
	Verifier  string
	Challenge string
	State     string
}

// NewPKCE generates a new PKCE code verifier, challenge, and state.
func NewPKCE() *PKCE {
	verifier := oauth2.GenerateVerifier()
	return &PKCE{
		Verifier:  verifier,
		Challenge: oauth2.S256ChallengeFromVerifier(verifier),
		State:     uuid.NewString(),
	}
}
