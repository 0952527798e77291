package httpserver

import "errors"

var (
	// ErrStart indicates the server failed to start or terminated abnormally.
	ErrStart = errors.New("httpserver: failed to start")

	// ErrShutdown indicates the graceful shutdown did not complete cleanly.
	ErrShutdown = errors.New("httpserver: failed to shutdown")
)
