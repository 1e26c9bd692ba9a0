package config

// SMTP configures the outbound mail sender. When Host or User is empty the
// mailer degrades to a logging no-op, so a dev environment needs no mail setup.
type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`

	// AlertRecipient receives low-stock alerts. Falls back to User when empty.
	AlertRecipient string `env:"SMTP_ALERT_RECIPIENT"`
}
