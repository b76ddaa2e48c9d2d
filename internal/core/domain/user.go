package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")

// User models an account allowed to sign in to the dashboard.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// AuthErrorKind tags why a sign-in did not produce an identity.
type AuthErrorKind int

const (
	// AuthCredentialsSignin means the email/password pair was rejected.
	AuthCredentialsSignin AuthErrorKind = iota + 1
	// AuthCallbackError means the credential check itself failed.
	AuthCallbackError
)

func (k AuthErrorKind) String() string {
	switch k {
	case AuthCredentialsSignin:
		return "credentials_signin"
	case AuthCallbackError:
		return "callback_error"
	default:
		return "unknown"
	}
}

// AuthError is the only error type the sign-in flow classifies. Anything
// else coming out of it is unclassified and must be propagated.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return "auth " + e.Kind.String() + ": " + e.Err.Error()
	}
	return "auth " + e.Kind.String()
}

func (e *AuthError) Unwrap() error { return e.Err }

// AuthErrorMessage returns the user-facing message for a classified sign-in
// error. ok is false when err is not an AuthError.
func AuthErrorMessage(err error) (msg string, ok bool) {
	var ae *AuthError
	if !errors.As(err, &ae) {
		return "", false
	}
	switch ae.Kind {
	case AuthCredentialsSignin:
		return "Invalid credentials.", true
	default:
		return "Something went wrong.", true
	}
}
