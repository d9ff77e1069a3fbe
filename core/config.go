package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName string
		Env     string // DEV (default), TEST, QA, PROD
		Debug   bool
		Build   string

		// client side
		APIBaseURL      string
		DefaultPageSize int
		RequestTimeout  time.Duration
		SessionFile     string

		// services
		RollbarToken     string
		SendgridAPIKey   string
		DefaultFromEmail string

		// dev API server
		Server ServerConfig
		Admin  AdminSeedConfig
	}

	ServerConfig struct {
		Address            string
		SecretKey          string
		JWTExpirationDelta time.Duration
	}

	AdminSeedConfig struct {
		Name     string
		Email    string
		Password string
	}
)

func (c *Config) IsProd() bool { return c.Env == "PROD" }

// NewConfig loads the app configuration from the environment,
// with an optional config/.env.<env> dotenv file.
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Academico")
	conf.SetDefault("build", "dev")
	conf.SetDefault("apiBaseUrl", "http://localhost:8080/api/v1")
	conf.SetDefault("defaultPageSize", 10)
	conf.SetDefault("requestTimeout", 30*time.Second)
	conf.SetDefault("sessionFile", defaultSessionFile())
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("serverAddress", ":8080")
	conf.SetDefault("secretKey", "z#2pq5-wer)enb$+57=d&uoxh2(h!x)#*c2(#yg4h^$cegm2")
	conf.SetDefault("jwtExpirationDelta", 24*time.Hour)
	conf.SetDefault("adminName", "Admin")
	conf.SetDefault("adminEmail", "admin@academico.dev")
	conf.SetDefault("adminPassword", "admin")

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:          conf.GetString("appName"),
		Env:              env,
		Debug:            conf.GetBool("debug"),
		Build:            conf.GetString("build"),
		APIBaseURL:       conf.GetString("apiBaseUrl"),
		DefaultPageSize:  conf.GetInt("defaultPageSize"),
		RequestTimeout:   conf.GetDuration("requestTimeout"),
		SessionFile:      conf.GetString("sessionFile"),
		RollbarToken:     conf.GetString("rollbarToken"),
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		DefaultFromEmail: conf.GetString("defaultFromEmail"),
		Server: ServerConfig{
			Address:            conf.GetString("serverAddress"),
			SecretKey:          conf.GetString("secretKey"),
			JWTExpirationDelta: conf.GetDuration("jwtExpirationDelta"),
		},
		Admin: AdminSeedConfig{
			Name:     conf.GetString("adminName"),
			Email:    conf.GetString("adminEmail"),
			Password: conf.GetString("adminPassword"),
		},
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "academico", "session.json")
}
