package email

// Config holds email service configuration. The Postmark tokens are
// deliberately optional: when absent the application falls back to the
// development sender, and delivery failures surface on first send rather
// than at startup.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@oddlzenieonline.sk"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"info@oddlzenieonline.sk"`
}
