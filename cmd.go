package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"

	// flags
	configFile string
	envFile    string
	logFile    string
	logLevel   string
	logConsole bool

	rootCmd = &cobra.Command{
		Use:   "homework-bot",
		Short: "Relays Practicum homework review status changes to Telegram",
		Long: "homework-bot polls the Practicum homework_statuses API on a fixed period.\n" +
			"Whenever the status of the latest homework changes, a message is sent " +
			"to the configured Telegram chat.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBot,
	}

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and credentials, then exit",
		RunE:  runCheck,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", Version)
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", envOr("HOMEWORK_BOT_CONFIG", "homework_bot.yaml"), "Path to the YAML tunables file")
	pf.StringVar(&envFile, "env-file", ".env", "Path to a .env file with the tokens")
	pf.StringVar(&logFile, "log-file", "", "Log file, overrides LOG_FILE")
	pf.StringVar(&logLevel, "log-level", "", "Log level, overrides LOG_LEVEL")
	pf.BoolVar(&logConsole, "console", false, "Mirror logs to stderr")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); len(v) > 0 {
		return v
	}

	return fallback
}

// setup loads everything runBot and runCheck share. The closer must be
// released by the caller even when an error is returned.
func setup(cmd *cobra.Command) (Config, Credentials, zerolog.Logger, func() error, error) {
	nop := func() error { return nil }

	if err := loadDotEnv(envFile); err != nil {
		return Config{}, Credentials{}, zerolog.Nop(), nop, err
	}

	cfg, err := ReadConfig(configFile)
	if err != nil {
		return cfg, Credentials{}, zerolog.Nop(), nop, err
	}

	pf := cmd.Flags()
	if pf.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if pf.Changed("console") {
		cfg.LogConsole = logConsole
	}

	log, closer, err := newLogger(cfg)
	if err != nil {
		return cfg, Credentials{}, log, nop, err
	}

	creds := credentialsFromEnv()
	if err := checkTokens(creds, log); err != nil {
		return cfg, creds, log, closer.Close, err
	}

	return cfg, creds, log, closer.Close, nil
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, _, _, closeLog, err := setup(cmd)
	defer closeLog()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration OK. Polling %s every %ds.\n", cfg.Endpoint, cfg.RetryPeriod)
	return nil
}

func runBot(cmd *cobra.Command, _ []string) error {
	cfg, creds, log, closeLog, err := setup(cmd)
	defer closeLog()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := bot.New(creds.TelegramToken)
	if err != nil {
		critical(log).Err(err).Msg("failed to create telegram bot")
		return err
	}

	api := NewAPIClient(cfg.Endpoint, creds.PracticumToken, time.Duration(cfg.HTTPTimeout)*time.Second, log)
	notifier := NewNotifier(b, creds.RecipientID(), log)
	from := time.Now().Unix() - cfg.FromDateOffset
	period := time.Duration(cfg.RetryPeriod) * time.Second

	log.Info().Int64("from_date", from).Dur("period", period).Msg("Ready. Polling for homework status updates...")
	NewPoller(api, notifier, from, period, cfg.NotifyErrors, log).Run(ctx)
	log.Info().Msg("stopped")

	return nil
}
