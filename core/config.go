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
	ServerConfig struct {
		Address            string
		DebugAddress       string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
		DisableRequestLogs bool
	}

	SessionConfig struct {
		CookieName    string
		Secure        bool
		IdleTimeout   time.Duration // tabs unused for longer are dropped
		SweepInterval time.Duration
	}

	Config struct {
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		Debug        bool
		TestMode     bool
		AppName      string
		SecretKey    string
		RollbarToken string
		DemoPassword string // shared password of the mock identities; empty accepts any
		Server       ServerConfig
		Session      SessionConfig
	}
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("build", "dev")
	conf.SetDefault("appName", "LMS")
	conf.SetDefault("secretKey", "lms-9a1!x$e7(#uw2=k0c%p8d+3hb)f6&rv5mq4z")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("demoPassword", "")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.debugAddress", ":4000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.jwtExpirationDelta", 24*time.Hour)
	conf.SetDefault("server.disableRequestLogs", false)
	conf.SetDefault("session.cookieName", "lms-session")
	conf.SetDefault("session.secure", false)
	conf.SetDefault("session.idleTimeout", 30*time.Minute)
	conf.SetDefault("session.sweepInterval", time.Minute)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		SecretKey:    conf.GetString("secretKey"),
		RollbarToken: conf.GetString("rollbarToken"),
		DemoPassword: conf.GetString("demoPassword"),
		Server: ServerConfig{
			Address:            conf.GetString("server.address"),
			DebugAddress:       conf.GetString("server.debugAddress"),
			ShutdownTimeout:    conf.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: conf.GetDuration("server.jwtExpirationDelta"),
			DisableRequestLogs: conf.GetBool("server.disableRequestLogs"),
		},
		Session: SessionConfig{
			CookieName:    conf.GetString("session.cookieName"),
			Secure:        conf.GetBool("session.secure"),
			IdleTimeout:   conf.GetDuration("session.idleTimeout"),
			SweepInterval: conf.GetDuration("session.sweepInterval"),
		},
	}
}

// NewTestConfig returns a Config suitable for tests: no .env lookup, fixed secret.
func NewTestConfig() *Config {
	return &Config{
		Env:       "TEST",
		Build:     "test",
		TestMode:  true,
		AppName:   "LMS",
		SecretKey: "secret",
		Server: ServerConfig{
			ShutdownTimeout:    time.Second,
			JWTExpirationDelta: 10 * time.Minute,
			DisableRequestLogs: true,
		},
		Session: SessionConfig{
			CookieName:    "lms-session",
			IdleTimeout:   time.Minute,
			SweepInterval: time.Second,
		},
	}
}
