package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	// SiteURL is the storefront origin used when building gift links.
	SiteURL string `env:"SITE_URL" envDefault:"http://localhost:3000"`

	HTTP     HTTPServer `envPrefix:"HTTP_"`
	DB       Database   `envPrefix:"DB_"`
	Auth     Auth       `envPrefix:"AUTH_"`
	Checkout Checkout   `envPrefix:"CHECKOUT_"`
	Connect  Connect    `envPrefix:"CONNECT_"`
	Storage  Storage    `envPrefix:"STORAGE_"`
	Mailer   Mailer     `envPrefix:"MAILER_"`
}

type HTTPServer struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"8080"`
}

type Database struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER,required"`
	Password string `env:"PASSWORD,required"`
	Name     string `env:"NAME,required"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET,required"`
	// GiftTokenTTLDays bounds how long a gift link stays redeemable.
	GiftTokenTTLDays int `env:"GIFT_TOKEN_TTL_DAYS" envDefault:"30"`
}

type Checkout struct {
	ShippingFlat string `env:"SHIPPING_FLAT" envDefault:"5.00"`
	Currency     string `env:"CURRENCY" envDefault:"USD"`
}

type Connect struct {
	APIBase string `env:"API_BASE" envDefault:"https://api.connect.example.com"`
	APIKey  string `env:"API_KEY"`
}

type Storage struct {
	Bucket     string `env:"BUCKET" envDefault:"giftly-media"`
	Region     string `env:"REGION" envDefault:"us-east-1"`
	Endpoint   string `env:"ENDPOINT"`
	PublicBase string `env:"PUBLIC_BASE"`
}

type Mailer struct {
	APIBase string `env:"API_BASE" envDefault:"https://api.resend.com"`
	APIKey  string `env:"API_KEY"`
	From    string `env:"FROM" envDefault:"Giftly <no-reply@giftly.app>"`
	// AuthBase is the identity provider origin used to build verification URLs.
	AuthBase string `env:"AUTH_BASE"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// DSN assembles the lib/pq connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}
