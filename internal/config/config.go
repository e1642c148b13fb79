package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains console configuration parameters.
type Config struct {
	LogLevel  int    `env:"LOG_LEVEL" envDefault:"0"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	HTTP      HTTP   `envPrefix:"HTTP_"`
	Auth      Auth
	Directory Directory
	Database  Database  `envPrefix:"DATABASE_"`
	Storage   Storage   `envPrefix:"MINIO_"`
	Telemetry Telemetry `envPrefix:"OTEL_EXPORTER_OTLP_"`
}

// HTTP contains web server parameters.
type HTTP struct {
	Port               string `env:"PORT" envDefault:"3000"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
}

// Auth contains the console login secret and session parameters.
type Auth struct {
	Password      string        `env:"APP_PASSWORD,required,notEmpty"`
	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// Directory contains TrueConf API parameters.
type Directory struct {
	ServerAddress string        `env:"SERVER_ADDRESS,required,notEmpty"`
	APIKey        string        `env:"API_KEY,required,notEmpty"`
	EmailDomain   string        `env:"DIRECTORY_EMAIL_DOMAIN" envDefault:"mobilevicon.polri.go.id"`
	Timeout       time.Duration `env:"DIRECTORY_TIMEOUT" envDefault:"30s"`
	SearchLimit   int           `env:"DIRECTORY_SEARCH_LIMIT" envDefault:"10"`
}

// Database contains the import audit database parameters.
// An empty DSN disables the audit log.
type Database struct {
	DSN string `env:"DSN"`
}

// Enabled reports whether the audit log is configured.
func (d Database) Enabled() bool {
	return d.DSN != ""
}

// Storage contains object storage parameters for import reports.
// An empty endpoint disables report archiving.
type Storage struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"trueconf-console-reports"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Enabled reports whether report archiving is configured.
func (s Storage) Enabled() bool {
	return s.Endpoint != ""
}

// Telemetry contains OTLP trace exporter parameters.
type Telemetry struct {
	Endpoint string `env:"ENDPOINT"`
	Insecure bool   `env:"INSECURE" envDefault:"false"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
