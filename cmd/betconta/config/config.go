package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	RunAddress  string `env:"RUN_ADDRESS" envDefault:":8080"`
	DatabaseURI string `env:"DATABASE_URI"`

	JWTSecret       string        `env:"JWT_SECRET" envDefault:"dev-only-secret"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCacheTTL time.Duration `env:"SESSION_CACHE_TTL" envDefault:"30s"`

	WithdrawalFee      string `env:"WITHDRAWAL_FEE" envDefault:"4.90"`
	ReferralCommission string `env:"REFERRAL_COMMISSION" envDefault:"10.00"`

	PixProviderAddress string        `env:"PIX_PROVIDER_ADDRESS"`
	PixPollInterval    time.Duration `env:"PIX_POLL_INTERVAL" envDefault:"5s"`

	CEPBaseURL  string        `env:"CEP_BASE_URL" envDefault:"https://viacep.com.br"`
	CEPCacheTTL time.Duration `env:"CEP_CACHE_TTL" envDefault:"10m"`

	AdminLogin    string `env:"ADMIN_LOGIN" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
