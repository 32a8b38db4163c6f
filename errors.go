package jobboard

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes exposed to API clients alongside the HTTP status.
const (
	TextCodeTokenExpired         = "TOKEN_EXPIRED"
	TextCodeTokenMalformed       = "TOKEN_MALFORMED"
	TextCodeVerificationRequired = "VERIFICATION_REQUIRED"
)

// ErrIdentityNotFound is returned when no user matches the given identifier.
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("IDENTITY_NOT_FOUND")

// ErrDuplicateEmail is returned when a create collides with an existing email.
var ErrDuplicateEmail = goerrors.New("user already exists with this email", goerrors.CategoryConflict).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("DUPLICATE_EMAIL")

// ErrInvalidCredentials covers both unknown identifiers and bad passwords so
// the two cases are indistinguishable to a caller.
var ErrInvalidCredentials = goerrors.New("invalid email/username or password", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("INVALID_CREDENTIALS")

// ErrAccountRestricted is returned when a restricted account attempts to
// authenticate, regardless of password correctness.
var ErrAccountRestricted = goerrors.New("your account has been restricted, please contact admin", goerrors.CategoryAuthz).
	WithCode(goerrors.CodeForbidden).
	WithTextCode("ACCOUNT_RESTRICTED")

// ErrVerificationRequired is returned when an unverified account attempts to
// authenticate. Handlers attach the email so clients can offer a resend.
var ErrVerificationRequired = goerrors.New("please verify your email before logging in", goerrors.CategoryAuthz).
	WithCode(goerrors.CodeForbidden).
	WithTextCode(TextCodeVerificationRequired)

// ErrUnauthenticated is returned when a protected route receives no bearer
// token at all.
var ErrUnauthenticated = goerrors.New("access denied, no token provided", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("UNAUTHENTICATED")

// ErrInvalidToken is returned when a bearer token fails signature or claims
// verification.
var ErrInvalidToken = goerrors.New("invalid token", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("INVALID_TOKEN")

// ErrTokenExpired is returned when a session token is past its expiry.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed is returned for tokens that cannot be parsed or verified.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMalformed)

// ErrForbidden is returned when the caller's role does not satisfy a
// role-restricted route.
var ErrForbidden = goerrors.New("insufficient privileges", goerrors.CategoryAuthz).
	WithCode(goerrors.CodeForbidden).
	WithTextCode("FORBIDDEN")

// ErrAdminProtected guards the administrator account from restriction or
// removal.
var ErrAdminProtected = goerrors.New("administrator accounts cannot be modified", goerrors.CategoryAuthz).
	WithCode(goerrors.CodeForbidden).
	WithTextCode("ADMIN_PROTECTED")

// ErrOneTimeNotFound is returned when no live entry exists for the email.
var ErrOneTimeNotFound = goerrors.New("no code or token found, please request a new one", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("ONE_TIME_NOT_FOUND")

// ErrOneTimeExpired is returned when the entry's TTL has elapsed; the entry is
// purged as a side effect.
var ErrOneTimeExpired = goerrors.New("code or token has expired, please request a new one", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("ONE_TIME_EXPIRED")

// ErrOneTimeMismatch is returned for a wrong candidate value. The stored entry
// survives so the caller may retry within the TTL.
var ErrOneTimeMismatch = goerrors.New("invalid code or token, please try again", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("ONE_TIME_MISMATCH")

// ErrWeakPassword is returned when a new password fails the strength policy.
var ErrWeakPassword = goerrors.New(
	"password must be at least 8 characters with uppercase, lowercase, number, and special character",
	goerrors.CategoryValidation).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("WEAK_PASSWORD")

// ErrMismatchedHashAndPassword is the bcrypt comparison failure.
var ErrMismatchedHashAndPassword = goerrors.New("mismatched hash and password", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("PASSWORD_MISMATCH")

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = goerrors.New("value must not be an empty string", goerrors.CategoryValidation).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("EMPTY_STRING")

// ErrorWithMetadata copies a sentinel error and attaches per-call metadata.
// The copy keeps the sentinel as its cause so errors.Is still matches the
// sentinel, and the sentinel's own metadata map is never mutated.
func ErrorWithMetadata(sentinel *goerrors.Error, meta map[string]any) *goerrors.Error {
	clone := sentinel.Clone()
	clone.Source = sentinel
	return clone.WithMetadata(meta)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode == TextCodeTokenExpired {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
