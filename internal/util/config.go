package util

import (
	"errors"
	"fmt"
	_ "github.com/joho/godotenv/autoload"
	"log"
	"os"
	"strconv"
	"time"
)

type configValue struct {
	envVarName   string
	required     bool
	errorMessage string
	defaultValue string
	Value        string
}

type Config struct {
	DbConnectionString    configValue
	BotToken              configValue
	IndexUrlTemplate      configValue
	OlxOrigin             configValue
	SeqUrl                configValue
	SeqToken              configValue
	Environment           configValue
	ScanIntervalSeconds   configValue
	ItemsPerPair          configValue
	FetchConcurrency      configValue
	RequestTimeoutSeconds configValue
}

func NewConfig() *Config {
	const dbConnectionStringName = "DB_CONNECTION_STRING"
	const botTokenName = "BOT_TOKEN"
	const indexUrlTemplateName = "INDEX_URL_TEMPLATE"
	const olxOriginName = "OLX_ORIGIN"
	const seqUrlName = "SEQ_URL"
	const seqTokenName = "SEQ_TOKEN"
	const environmentName = "ENVIRONMENT"
	const scanIntervalSecondsName = "SCAN_INTERVAL_SECONDS"
	const itemsPerPairName = "ITEMS_PER_PAIR"
	const fetchConcurrencyName = "FETCH_CONCURRENCY"
	const requestTimeoutSecondsName = "REQUEST_TIMEOUT_SECONDS"

	return &Config{
		DbConnectionString: configValue{
			envVarName:   dbConnectionStringName,
			required:     true,
			errorMessage: fmt.Sprintf("make sure that environment variable %s is set and in DSN format", dbConnectionStringName),
		},
		BotToken: configValue{
			envVarName:   botTokenName,
			required:     true,
			errorMessage: fmt.Sprintf("make sure that environment variable %s holds a telegram bot api token", botTokenName),
		},
		IndexUrlTemplate: configValue{
			envVarName:   indexUrlTemplateName,
			required:     false,
			defaultValue: "https://www.olx.pl/nieruchomosci/{buildingType}/{adType}/{city}/",
		},
		OlxOrigin: configValue{
			envVarName:   olxOriginName,
			required:     false,
			defaultValue: "https://www.olx.pl",
		},
		SeqUrl: configValue{
			envVarName: seqUrlName,
			required:   false,
		},
		SeqToken: configValue{
			envVarName: seqTokenName,
			required:   false,
		},
		Environment: configValue{
			envVarName:   environmentName,
			required:     false,
			defaultValue: "development",
		},
		ScanIntervalSeconds: configValue{
			envVarName:   scanIntervalSecondsName,
			required:     false,
			defaultValue: "60",
		},
		ItemsPerPair: configValue{
			envVarName:   itemsPerPairName,
			required:     false,
			defaultValue: "13",
		},
		FetchConcurrency: configValue{
			envVarName:   fetchConcurrencyName,
			required:     false,
			defaultValue: "8",
		},
		RequestTimeoutSeconds: configValue{
			envVarName:   requestTimeoutSecondsName,
			required:     false,
			defaultValue: "15",
		},
	}
}

var config *Config

func GetConfig() *Config {
	if config == nil {
		return load()
	}

	return config
}

func load() *Config {
	config := NewConfig()

	values := []*configValue{
		&config.DbConnectionString,
		&config.BotToken,
		&config.IndexUrlTemplate,
		&config.OlxOrigin,
		&config.SeqUrl,
		&config.SeqToken,
		&config.Environment,
		&config.ScanIntervalSeconds,
		&config.ItemsPerPair,
		&config.FetchConcurrency,
		&config.RequestTimeoutSeconds,
	}

	for _, v := range values {
		if err := populateEnv(v); err != nil {
			log.Fatal(err)
		}
	}

	return config
}

func populateEnv(m *configValue) (err error) {
	v := os.Getenv(m.envVarName)

	if v == "" && m.required {
		if m.errorMessage != "" {
			return errors.New(m.errorMessage)
		}

		return fmt.Errorf("environment variable %s is not set", m.envVarName)
	}

	if v == "" {
		m.Value = m.defaultValue
		return nil
	}

	m.Value = v
	return nil
}

// ScanInterval returns the pause between scan cycles.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(intValue(c.ScanIntervalSeconds, 60)) * time.Second
}

// RequestTimeout returns the per-request timeout for index and detail fetches.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(intValue(c.RequestTimeoutSeconds, 15)) * time.Second
}

// ItemCap returns how many listings are collected per (building, transaction) pair.
func (c *Config) ItemCap() int {
	return intValue(c.ItemsPerPair, 13)
}

// Concurrency returns the detail-page fetch fan-out cap.
func (c *Config) Concurrency() int {
	return intValue(c.FetchConcurrency, 8)
}

func intValue(v configValue, fallback int) int {
	n, err := strconv.Atoi(v.Value)
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}
