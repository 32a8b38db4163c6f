// Package jobboard provides the account and authentication core of the job
// board backend: the credential store, one-time token ledgers, JWT session
// issuance, and the HTTP controllers for the account lifecycle.
//
// User lifecycle:
//   - Users carry a UserStatus field kept in sync with the IsActive and
//     IsVerified flags. Statuses cover active and restricted flows; the
//     UserStateMachine centralizes the transition graph, audit timestamps,
//     and guards (administrator accounts cannot be restricted or removed).
//
// One-time tokens:
//   - Ledger holds time-boxed single-use secrets keyed by email. Two instances
//     back the system: 4-digit verification codes (5 minute TTL) and 256-bit
//     password reset tokens (24 hour TTL). Issuing overwrites any prior entry
//     for the same email; a successful validation consumes the entry, a
//     mismatch does not, and expired entries are purged on first access.
//
// Sessions:
//   - TokenService signs {id, email, role} claims with HS256 and a 24 hour
//     expiry. Tokens are stateless and never revoked server side; a password
//     reset does not invalidate sessions already issued. Expiry and signature
//     checks are the only termination mechanisms.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter used by Auther and the
//     state machine to describe lifecycle, login, verification, and password
//     reset events. Sinks run best-effort (errors are logged) so you can
//     forward to a database or queue without blocking authentication.
package jobboard
