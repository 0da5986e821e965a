package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	envPracticumToken = "TOKEN_PRAK"
	envTelegramToken  = "TOKEN_BOT"
	envChatID         = "USER_ID"

	defaultEndpoint       = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	defaultRetryPeriod    = 600
	defaultFromDateOffset = 60 * 60 * 24 * 30
	defaultHTTPTimeout    = 30
)

// Config holds the tunables. Secrets never live here, see Credentials.
type Config struct {
	Endpoint       string `yaml:"ENDPOINT"`
	RetryPeriod    int    `yaml:"RETRY_PERIOD"`
	FromDateOffset int64  `yaml:"FROM_DATE_OFFSET"`
	HTTPTimeout    int    `yaml:"HTTP_TIMEOUT"`
	LogFile        string `yaml:"LOG_FILE"`
	LogLevel       string `yaml:"LOG_LEVEL"`
	LogConsole     bool   `yaml:"LOG_CONSOLE"`
	NotifyErrors   bool   `yaml:"NOTIFY_ERRORS"`
}

func defaultConfig() Config {
	return Config{
		Endpoint:       defaultEndpoint,
		RetryPeriod:    defaultRetryPeriod,
		FromDateOffset: defaultFromDateOffset,
		HTTPTimeout:    defaultHTTPTimeout,
		LogFile:        "main.log",
		LogLevel:       "debug",
		NotifyErrors:   true,
	}
}

// ReadConfig overlays the YAML file on top of the defaults.
// A missing file is fine, the defaults are used as is.
func ReadConfig(filename string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("error when reading %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error when parsing %s: %w", filename, err)
	}

	if cfg.RetryPeriod <= 0 {
		cfg.RetryPeriod = defaultRetryPeriod
	}

	if cfg.FromDateOffset <= 0 {
		cfg.FromDateOffset = defaultFromDateOffset
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}

	if len(cfg.Endpoint) == 0 {
		cfg.Endpoint = defaultEndpoint
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	return cfg, nil
}

// loadDotEnv fills the environment from a .env file. Variables that are
// already set are left alone.
func loadDotEnv(filename string) error {
	if len(filename) == 0 {
		return nil
	}

	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(filename); err != nil {
		return fmt.Errorf("error loading %s: %w", filename, err)
	}

	return nil
}

type Credentials struct {
	PracticumToken string
	TelegramToken  string
	ChatID         string
}

func credentialsFromEnv() Credentials {
	return Credentials{
		PracticumToken: os.Getenv(envPracticumToken),
		TelegramToken:  os.Getenv(envTelegramToken),
		ChatID:         os.Getenv(envChatID),
	}
}

// RecipientID is what go-telegram/bot expects as ChatID: numeric ids as
// int64, anything else (like @channel) as a string.
func (c Credentials) RecipientID() any {
	if id, err := strconv.ParseInt(c.ChatID, 10, 64); err == nil {
		return id
	}

	return c.ChatID
}

type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Missing, ", ")
}

// missing lists every absent credential, not just the first one.
func (c Credentials) missing() []string {
	var names []string

	if len(c.PracticumToken) == 0 {
		names = append(names, envPracticumToken)
	}

	if len(c.TelegramToken) == 0 {
		names = append(names, envTelegramToken)
	}

	if len(c.ChatID) == 0 {
		names = append(names, envChatID)
	}

	return names
}

var missingMessages = map[string]string{
	envPracticumToken: "Practicum token is absent!",
	envTelegramToken:  "Telegram bot token is absent!",
	envChatID:         "Recipient chat id is absent!",
}

// checkTokens logs one critical entry per missing credential. The returned
// *ConfigError names all of them.
func checkTokens(c Credentials, log zerolog.Logger) error {
	names := c.missing()
	for _, name := range names {
		critical(log).Str("variable", name).Msg(missingMessages[name])
	}

	if len(names) > 0 {
		return &ConfigError{Missing: names}
	}

	return nil
}
