package config

import (
	"os"
	"strconv"
)

type Config struct {
	Env               string
	Port              int
	DatabaseURL       string
	CatalogURL        string
	CatalogTimeoutMS  int
	KafkaBrokers      string
	KafkaTopic        string
	JWTSecret         string
	StrictTransitions bool
}

func Default() Config {
	return Config{
		Env:              "dev",
		Port:             3002,
		DatabaseURL:      "",
		CatalogURL:       "http://127.0.0.1:3001",
		CatalogTimeoutMS: 5000,
		KafkaBrokers:     "",
		KafkaTopic:       "order-events",
		JWTSecret:        "",
	}
}

func EnvDefaults() Config {
	return fromEnv(Default())
}

func fromEnv(c Config) Config {
	if v := os.Getenv("ORDERS_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("ORDERS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
	if v := os.Getenv("ORDERS_DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("ORDERS_CATALOG_URL"); v != "" {
		c.CatalogURL = v
	}
	if v := os.Getenv("ORDERS_CATALOG_TIMEOUT_MS"); v != "" {
		if t, err := strconv.Atoi(v); err == nil && t > 0 {
			c.CatalogTimeoutMS = t
		}
	}
	if v := os.Getenv("ORDERS_KAFKA_BROKERS"); v != "" {
		c.KafkaBrokers = v
	}
	if v := os.Getenv("ORDERS_KAFKA_TOPIC"); v != "" {
		c.KafkaTopic = v
	}
	if v := os.Getenv("ORDERS_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("ORDERS_STRICT_TRANSITIONS"); v != "" {
		switch v {
		case "1", "true", "TRUE":
			c.StrictTransitions = true
		case "0", "false", "FALSE":
			c.StrictTransitions = false
		}
	}
	return c
}
