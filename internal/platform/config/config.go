// Package config arma la configuración del proceso desde variables de entorno.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Env es una vista con prefijo sobre las variables de entorno ("DASHBOARD_", "AUTH_", ...).
type Env struct{ prefix string }

func NewEnv() Env { return Env{} }

func (e Env) Prefix(p string) Env { return Env{prefix: e.prefix + p} }

func (e Env) Get(key, def string) string {
	v := strings.TrimSpace(os.Getenv(e.prefix + key))
	if v == "" {
		return def
	}
	return v
}

func (e Env) GetBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(e.prefix + key)))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}

func (e Env) GetInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(e.prefix + key)))
	if err != nil {
		return def
	}
	return n
}

func (e Env) GetDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(e.prefix + key)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// GetList separa por comas y descarta vacíos.
func (e Env) GetList(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(e.prefix + key))
	if raw == "" {
		return def
	}
	out := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type Config struct {
	Port string

	// Storage: DB_DSN (postgres) > SQLITE_PATH > memoria.
	DBDSN      string
	SQLitePath string
	SeedCSV    string

	// Base del propio API; el dashboard lee a través de él.
	APIBaseURL   string
	FetchTimeout time.Duration

	Dashboard Dashboard
	Auth      Auth

	CORSOrigins []string
}

type Dashboard struct {
	Title    string
	Author   string
	LogoPath string

	// Sesión estática de desarrollo.
	User string
	Role string

	MaxSessions int
}

type Auth struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Load lee la config con defaults de desarrollo.
func Load() Config {
	env := NewEnv()
	port := env.Get("PORT", "8051")

	dash := env.Prefix("DASHBOARD_")
	auth := env.Prefix("AUTH_")

	return Config{
		Port:         port,
		DBDSN:        env.Get("DB_DSN", ""),
		SQLitePath:   env.Get("SQLITE_PATH", ""),
		SeedCSV:      env.Get("SEED_CSV", ""),
		APIBaseURL:   strings.TrimRight(env.Get("API_BASE_URL", "http://localhost:"+port), "/"),
		FetchTimeout: env.GetDuration("FETCH_TIMEOUT", 10*time.Second),
		Dashboard: Dashboard{
			Title:       dash.Get("TITLE", "Shelter Dashboard"),
			Author:      dash.Get("AUTHOR", ""),
			LogoPath:    dash.Get("LOGO", ""),
			User:        dash.Get("USER", "lilly"),
			Role:        dash.Get("ROLE", "admin"),
			MaxSessions: dash.GetInt("MAX_SESSIONS", 256),
		},
		Auth: Auth{
			BaseURL: auth.Get("BASE_URL", ""),
			APIKey:  auth.Get("API_KEY", ""),
			Timeout: auth.GetDuration("TIMEOUT", 5*time.Second),
		},
		CORSOrigins: env.GetList("CORS_ORIGINS", []string{"*"}),
	}
}

func (c Config) Addr() string { return ":" + c.Port }
