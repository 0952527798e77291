// Package auth implements account registration, password login, session
// token issuance, and request authentication for the API.
//
// Sessions are stateless HS256 JWTs carrying the user identifier and
// email, valid for 30 days by default. An optional Redis-backed denylist
// enables early revocation; without it, logout is a client-side concern
// and tokens stay valid until expiry.
//
// Login failures are intentionally indistinguishable: a wrong password
// and an unknown email both produce ErrInvalidCredentials, and token
// validation failures collapse to ErrTokenInvalid regardless of cause.
package auth
