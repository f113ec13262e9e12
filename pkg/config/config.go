package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	pkgtls "github.com/cloud-wave-best-zizon/catalog-service/pkg/tls"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	StorePath    string `envconfig:"STORE_PATH" default:"data/products.json"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	KafkaEnabled bool   `envconfig:"KAFKA_ENABLED" default:"false"`
	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"product-events"`

	// processed separately so the TLS_* variable names stay unprefixed
	TLS pkgtls.TLSConfig `ignored:"true"`
}

// Load builds the configuration once at startup. A .env file is applied
// first when present; real environment variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.TLS); err != nil {
		return nil, err
	}
	return &cfg, nil
}
