// Package subscription tracks per-user pricing tiers synchronized from
// billing provider webhooks.
//
// The billing provider (Paddle) owns checkout, payment collection, and
// the customer portal; this package only mirrors the resulting state.
// Users without a subscription row are implicitly on the free tier, and
// tier resolution degrades to free on any failure so enforcement never
// fails open to paid limits.
//
// The plan catalog is loaded once at startup from a Source, either the
// built-in defaults or a YAML file. Plan price IDs must match the
// provider dashboard: webhook events are attributed to tiers by price ID.
package subscription
