package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v6"
)

const minBcryptHasherCost = 12

type Config struct {
	IsTestMode               bool     `env:"TEST_MODE" envDefault:"false"`
	Port                     uint16   `env:"PORT" envDefault:"9090"`
	AllowedOrigins           []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	Secret                   string   `env:"SECRET,notEmpty"`
	PostgresqlURL            string   `env:"POSTGRESQL_URL,notEmpty"`
	RedisURL                 string   `env:"REDIS_URL,notEmpty"`
	RabbitmqURL              string   `env:"RABBITMQ_URL,notEmpty"`
	OutboundEmailQueue       string   `env:"OUTBOUND_EMAIL_QUEUE" envDefault:"outbound-email"`
	BcryptHasherCost         int      `env:"BCRYPT_HASHER_COST" envDefault:"12"`
	PasswordResetBaseURL     url.URL  `env:"PASSWORD_RESET_BASE_URL,notEmpty"`
	EmailVerificationBaseURL url.URL  `env:"EMAIL_VERIFICATION_BASE_URL,notEmpty"`
	AwsRegion                string   `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey             string   `env:"AWS_ACCESS_KEY,notEmpty"`
	AwsSecretKey             string   `env:"AWS_SECRET_KEY,notEmpty"`
	EmailSender              string   `env:"EMAIL_SENDER,notEmpty"`
	SentryDsn                string   `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	config := Config{}
	if err := env.Parse(&config); err != nil {
		return nil, err
	}
	if config.BcryptHasherCost < minBcryptHasherCost {
		return nil, fmt.Errorf(
			"BCRYPT_HASHER_COST must be at least %d, got %d",
			minBcryptHasherCost,
			config.BcryptHasherCost,
		)
	}
	return &config, nil
}
