package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database `envPrefix:"DATABASE_"`
	Auth        Auth     `envPrefix:"AUTH_"`
	Items       Items    `envPrefix:"ITEMS_"`
	Digest      Digest   `envPrefix:"DIGEST_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	File   string `env:"LOG_FILE"` // rotated with lumberjack when set
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite | mysql
	URL    string `env:"URL" envDefault:"items.db"`
}

type Auth struct {
	JWTSecret   string        `env:"JWT_SECRET" envDefault:"change-me"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	EmailDomain string        `env:"EMAIL_DOMAIN" envDefault:"itemapp.com"`
}

type Items struct {
	DefaultPlatform string `env:"DEFAULT_PLATFORM" envDefault:"Amazon"`
}

type Digest struct {
	Enabled  bool   `env:"ENABLED" envDefault:"true"`
	Schedule string `env:"SCHEDULE" envDefault:"@midnight"`
}
