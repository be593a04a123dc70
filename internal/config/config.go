package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode    Mode
	LogMode string // dev|prod

	PredictorAddr string
	ChatbotAddr   string

	DataSource string // csv|sql
	DataPath   string // for csv
	// ALLOW_EMPTY_STORE: serve "no data" replies instead of refusing to start
	AllowEmptyStore bool

	DBDriver string
	DBDSN    string

	Predictor           string // mock|model
	ModelPath           string
	ProbabilityStrategy string // smooth|banded
	ProbabilityJitter   bool
	RecommendLimit      int

	RequireAuth    bool
	AuthHMACSecret string

	CORSOrigins []string
}

// FromEnv reads the process environment, after loading .env when present.
func FromEnv() Config {
	_ = godotenv.Load()

	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:    mode,
		LogMode: envOr("LOG_MODE", map[Mode]string{ModeOnline: "prod"}[mode]),

		PredictorAddr: envOr("PREDICTOR_ADDR", ":8001"),
		ChatbotAddr:   envOr("CHATBOT_ADDR", ":8002"),

		DataSource:      envOr("DATA_SOURCE", "csv"),
		DataPath:        envOr("DATA_PATH", "database/cutoff_history.csv"),
		AllowEmptyStore: envBool("ALLOW_EMPTY_STORE", false),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		Predictor:           envOr("PREDICTOR", "mock"),
		ModelPath:           envOr("MODEL_PATH", "model/cutoff_model.json"),
		ProbabilityStrategy: envOr("PROBABILITY_STRATEGY", "smooth"),
		ProbabilityJitter:   envBool("PROBABILITY_JITTER", true),
		RecommendLimit:      envInt("RECOMMEND_LIMIT", 5),

		RequireAuth:    envBool("REQUIRE_AUTH", false),
		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001,http://localhost:3002"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
