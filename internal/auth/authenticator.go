package auth

import (
	"context"

	"github.com/billbuddy/backend/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping auth methods (password, passkeys, OAuth)
// without changing the API layer.
type Authenticator interface {
	// Register creates a new account with the given email and credential.
	// The credential format depends on the implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user on success.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements before any account is touched.
	ValidateCredential(credential string) error
}
