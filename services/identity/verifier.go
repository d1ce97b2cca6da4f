package identity

import "context"

// Identity is what a verified bearer credential says about its holder.
type Identity struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// Verifier validates a bearer credential. Invalid credentials fail with an
// Unauthorized error; an unreachable provider fails with an Upstream error.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
