// Package pg wires the application to PostgreSQL: pgx pool creation with
// retry, goose migrations, readiness checks, and helpers for classifying
// common database errors (not-found, unique violations).
package pg
