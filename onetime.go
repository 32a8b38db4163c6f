package jobboard

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// VerificationCodeTTL bounds how long an email verification code stays valid.
	VerificationCodeTTL = 5 * time.Minute
	// ResetTokenTTL bounds how long a password reset token stays valid.
	ResetTokenTTL = 24 * time.Hour
)

// Ledger stores time-boxed single-use secrets keyed by email. Issuing a new
// secret overwrites any live entry for the same email, so at most one secret
// per email is ever valid. A successful Validate consumes the entry; a
// mismatch leaves it in place so the caller may retry within the TTL.
//
// The zero value is not usable; construct with NewVerificationCodes,
// NewResetTokens, or NewLedger.
type Ledger struct {
	mu       sync.Mutex
	entries  map[string]ledgerEntry
	ttl      time.Duration
	generate func() (string, error)
	now      func() time.Time
}

type ledgerEntry struct {
	secret    string
	expiresAt time.Time
}

// LedgerOption customizes ledger construction.
type LedgerOption func(*Ledger)

// WithLedgerClock injects a custom clock (useful for tests).
func WithLedgerClock(clock func() time.Time) LedgerOption {
	return func(l *Ledger) {
		if clock != nil {
			l.now = clock
		}
	}
}

// WithLedgerGenerator overrides how new secrets are minted.
func WithLedgerGenerator(generate func() (string, error)) LedgerOption {
	return func(l *Ledger) {
		if generate != nil {
			l.generate = generate
		}
	}
}

// NewLedger builds a ledger with the given TTL and secret generator.
func NewLedger(ttl time.Duration, generate func() (string, error), opts ...LedgerOption) *Ledger {
	l := &Ledger{
		entries:  map[string]ledgerEntry{},
		ttl:      ttl,
		generate: generate,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// NewVerificationCodes builds the ledger backing email verification: 4-digit
// codes between 1000 and 9999 with a 5 minute TTL.
func NewVerificationCodes(opts ...LedgerOption) *Ledger {
	return NewLedger(VerificationCodeTTL, GenerateVerificationCode, opts...)
}

// NewResetTokens builds the ledger backing password resets: 256-bit tokens
// rendered as 64 hex characters with a 24 hour TTL.
func NewResetTokens(opts ...LedgerOption) *Ledger {
	return NewLedger(ResetTokenTTL, GenerateResetToken, opts...)
}

// Issue mints a fresh secret for the email, replacing any prior entry. The
// secret is returned so the caller can deliver it out of band.
func (l *Ledger) Issue(email string) (string, error) {
	secret, err := l.generate()
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate one-time secret")
	}

	key := ledgerKey(email)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[key] = ledgerEntry{
		secret:    secret,
		expiresAt: l.now().Add(l.ttl),
	}

	return secret, nil
}

// Validate checks the candidate against the live entry for the email.
// Outcomes:
//   - no entry: ErrOneTimeNotFound
//   - entry past its TTL: ErrOneTimeExpired, entry purged
//   - wrong candidate: ErrOneTimeMismatch, entry kept
//   - match: nil, entry consumed
func (l *Ledger) Validate(email, candidate string) error {
	key := ledgerKey(email)

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		return ErrOneTimeNotFound
	}

	if l.now().After(entry.expiresAt) {
		delete(l.entries, key)
		return ErrOneTimeExpired
	}

	if entry.secret != candidate {
		return ErrOneTimeMismatch
	}

	delete(l.entries, key)
	return nil
}

// Peek checks the candidate without consuming the entry on a match. Expired
// entries are still purged.
func (l *Ledger) Peek(email, candidate string) error {
	key := ledgerKey(email)

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		return ErrOneTimeNotFound
	}

	if l.now().After(entry.expiresAt) {
		delete(l.entries, key)
		return ErrOneTimeExpired
	}

	if entry.secret != candidate {
		return ErrOneTimeMismatch
	}

	return nil
}

// Revoke drops any live entry for the email.
func (l *Ledger) Revoke(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, ledgerKey(email))
}

// Len reports how many entries are live, counting expired but unpurged ones.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func ledgerKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GenerateVerificationCode returns a uniformly random 4-digit code in the
// inclusive range 1000 to 9999.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(1000)).String(), nil
}

// GenerateResetToken returns 256 bits of randomness hex encoded.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
