package mailer

import "errors"

var (
	ErrInvalidConfig     = errors.New("mailer: invalid configuration")
	ErrInvalidParams     = errors.New("mailer: invalid email parameters")
	ErrFailedToSendEmail = errors.New("mailer: failed to send email")
)
