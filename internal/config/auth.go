package config

type Auth struct {
	// SessionSecret signs the session cookie.
	SessionSecret string `env:"AUTH_SESSION_SECRET,required"`

	// SessionMaxAge is the session cookie lifetime in seconds.
	SessionMaxAge int `env:"AUTH_SESSION_MAX_AGE" envDefault:"86400"`

	// SetupOwnerSecret gates the one-time bootstrap of the first owner
	// account. Bootstrap is disabled when empty.
	SetupOwnerSecret string `env:"SETUP_OWNER_SECRET"`

	// BcryptCost is the bcrypt cost factor for password hashing.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"12"`
}
