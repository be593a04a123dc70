package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MODE", "PREDICTOR_ADDR", "RECOMMEND_LIMIT", "ALLOW_EMPTY_STORE", "CORS_ORIGINS", "LOG_MODE", "PROBABILITY_STRATEGY"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.Mode != ModeOffline || cfg.LogMode != "" {
		t.Errorf("mode: %q log: %q", cfg.Mode, cfg.LogMode)
	}
	if cfg.PredictorAddr != ":8001" || cfg.ChatbotAddr != ":8002" {
		t.Errorf("addrs: %q %q", cfg.PredictorAddr, cfg.ChatbotAddr)
	}
	if cfg.RecommendLimit != 5 || cfg.AllowEmptyStore || cfg.ProbabilityStrategy != "smooth" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 3 {
		t.Errorf("cors: %v", cfg.CORSOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("LOG_MODE", "")
	t.Setenv("RECOMMEND_LIMIT", "10")
	t.Setenv("ALLOW_EMPTY_STORE", "yes")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("PROBABILITY_JITTER", "0")

	cfg := FromEnv()
	if cfg.Mode != ModeOnline || cfg.LogMode != "prod" {
		t.Errorf("mode: %q log: %q", cfg.Mode, cfg.LogMode)
	}
	if cfg.RecommendLimit != 10 || !cfg.AllowEmptyStore || cfg.ProbabilityJitter {
		t.Errorf("unexpected overrides: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("cors: %v", cfg.CORSOrigins)
	}
}
