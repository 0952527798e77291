// Package jwt implements the compact signed-claims codec used for session
// tokens: HS256 JWTs per RFC 7519, with constant-time signature
// verification and algorithm pinning.
//
// The Service accepts any JSON-serializable claims structure; claim types
// that implement Valid() error get temporal validation during Parse. The
// domain-level token service (svc/auth) layers subject/email claims and a
// fixed 30-day expiry on top of this codec.
package jwt
