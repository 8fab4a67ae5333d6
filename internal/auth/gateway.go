package auth

import (
	"context"
	"errors"
)

var (
	ErrDuplicateHandle    = errors.New("auth: handle already registered")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidToken       = errors.New("auth: invalid token")
)

// Gateway is the identity provider boundary. It owns credentials and bearer
// tokens; profile data lives in the directory, keyed by the identifier the
// gateway returns.
type Gateway interface {
	// Provision creates credentials for a new handle and returns the stable
	// identifier of the new identity. Fails with ErrDuplicateHandle when the
	// handle is already taken.
	Provision(ctx context.Context, handle, secret string) (string, error)

	// Authenticate verifies the secret for a handle and returns a bearer
	// token plus the identity's identifier.
	Authenticate(ctx context.Context, handle, secret string) (token string, id string, err error)

	// Verify validates a bearer token and returns the identity's identifier.
	Verify(ctx context.Context, token string) (string, error)
}

// TokenVerifier validates bearer tokens issued outside the local gateway.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}
