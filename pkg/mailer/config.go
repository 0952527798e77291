package mailer

// Config holds email service configuration. The Postmark tokens are
// optional so development environments can run with the logging sender;
// SenderEmail establishes the from-identity for all outbound mail.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@careeros.app"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@careeros.app"`
}

// Enabled reports whether Postmark credentials are configured.
func (c Config) Enabled() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
