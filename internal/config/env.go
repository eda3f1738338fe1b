package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	OnelyaBaseURL string
	OnelyaLogin   string
	OnelyaPass    string
	OnelyaPos     string
	OnelyaTimeout time.Duration

	JWTSecret string
	FontDir   string
}

func LoadEnv() Env {
	env := Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: getenv("GIN_MODE", ""),

		DBUser: getenv("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "aviatickets"),

		OnelyaBaseURL: getenv("ONELYA_BASE_URL", "https://test.onelya.ru/api"),
		OnelyaLogin:   getenv("ONELYA_LOGIN", ""),
		OnelyaPass:    os.Getenv("ONELYA_PASSWORD"),
		OnelyaPos:     getenv("ONELYA_POS", ""),
		OnelyaTimeout: 60 * time.Second,

		JWTSecret: getenv("JWT_SECRET", "demo-secret-change-me"),
		FontDir:   getenv("FONT_DIR", ""),
	}

	if ms := getenv("ONELYA_TIMEOUT_MS", ""); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 {
			env.OnelyaTimeout = time.Duration(v) * time.Millisecond
		}
	}

	// Provider credentials carry no defaults. Missing values are a warning,
	// not a crash: bookings still work through the local-fallback path.
	if !env.ProviderConfigured() {
		log.Println("warning: ONELYA_LOGIN/ONELYA_PASSWORD/ONELYA_POS not set, provider calls disabled (local fallback only)")
	}

	return env
}

// ProviderConfigured reports whether outbound Onelya calls can be signed.
func (e Env) ProviderConfigured() bool {
	return e.OnelyaLogin != "" && e.OnelyaPass != "" && e.OnelyaPos != ""
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
