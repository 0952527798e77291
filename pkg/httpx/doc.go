// Package httpx defines the HTTP boundary conventions shared by all route
// modules: a JSON response envelope, a typed error taxonomy mapped onto
// status codes, and strict JSON request body decoding.
//
// Success responses render as {"data": ...}; failures render as
// {"error": {"code", "message", "details"}}. Domain errors are translated
// to HTTPError values at the route layer; anything unrecognized collapses
// to a generic 500 without leaking internals.
package httpx
