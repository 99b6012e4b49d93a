package main

import (
	"errors"
	"io/fs"
	"os"

	"printdelivery/cmd"
	"printdelivery/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var settingsFile string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "printdelivery",
		Short:         "Print shop ordering, pricing and delivery dispatch",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if settingsFile == "" {
				settingsFile = os.Getenv("SETTINGS_FILE")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&settingsFile, "settings", "",
		"settings YAML file (default $SETTINGS_FILE, else the built-in Hanoi defaults)")

	root.AddCommand(serveCmd(), quoteCmd(), checkZoneCmd())
	return root
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:     envOr("HTTP_PORT", "8080"),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       envOr("DB_PORT", "5432"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBSslMode:    envOr("DB_SSLMODE", "disable"),
		SettingsFile: settingsFile,
		EventRelay:   envOr("EVENT_RELAY", cmd.EventRelayLocal),
		RelayChannel: os.Getenv("EVENT_RELAY_CHANNEL"),
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func loadDomain() (config.Settings, config.Domain, error) {
	settings, err := config.Load(settingsFile)
	if err != nil {
		return config.Settings{}, config.Domain{}, err
	}
	domain, err := settings.Build()
	if err != nil {
		return config.Settings{}, config.Domain{}, err
	}
	return settings, domain, nil
}
