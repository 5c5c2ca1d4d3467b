package ports

import "context"

// AuthProvider issues identities for email/password accounts. It reports
// domain.ErrDuplicateAccount, domain.ErrWeakPassword, domain.ErrInvalidEmail
// and domain.ErrInvalidCredentials.
type AuthProvider interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	// DeleteAccount undoes CreateAccount when the signup cannot complete.
	DeleteAccount(ctx context.Context, identity string) error
}
