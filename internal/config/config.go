package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ScopeSession = "session"
	ScopeGlobal  = "global"
)

type Config struct {
	Port              string
	GroqAPIKey        string
	GroqBaseURL       string
	Model             string
	ConversationScope string
	SessionTTL        time.Duration
	EvictionInterval  time.Duration
	UpstreamTimeout   time.Duration
	SpeechBaseURL     string
	TemplatePath      string
	LogLevel          string
	LogJSON           bool
}

type secretsFile struct {
	GroqAPIKey string `json:"GROQ_API_KEY"`
}

func LoadEnv() error {
	err := godotenv.Load(".env")
	if err != nil {
		log.Printf("Could not load .env file: %v", err)
		return err
	}
	return nil
}

// Load reads the runtime configuration from the environment and the secret
// file. A missing or malformed secret file is a startup failure.
func Load() (Config, error) {
	cfg := Config{
		Port:              getenvDefault("PORT", "5000"),
		GroqBaseURL:       os.Getenv("GROQ_BASE_URL"),
		Model:             getenvDefault("MODEL", "llama-3.1-8b-instant"),
		ConversationScope: getenvDefault("CONVERSATION_SCOPE", ScopeSession),
		SessionTTL:        time.Duration(getenvIntDefault("SESSION_TTL_MINUTES", 120)) * time.Minute,
		EvictionInterval:  time.Duration(getenvIntDefault("EVICTION_INTERVAL_MINUTES", 10)) * time.Minute,
		UpstreamTimeout:   time.Duration(getenvIntDefault("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
		SpeechBaseURL:     os.Getenv("SPEECH_BASE_URL"),
		TemplatePath:      getenvDefault("TEMPLATE_PATH", "web/index.html"),
		LogLevel:          getenvDefault("LOG_LEVEL", "info"),
		LogJSON:           getenvDefault("LOG_FORMAT", "json") == "json",
	}

	if cfg.ConversationScope != ScopeSession && cfg.ConversationScope != ScopeGlobal {
		return cfg, fmt.Errorf("CONVERSATION_SCOPE must be %q or %q, got %q", ScopeSession, ScopeGlobal, cfg.ConversationScope)
	}

	key, err := loadSecret(getenvDefault("CONFIG_FILE", "config.json"))
	if err != nil {
		return cfg, err
	}
	cfg.GroqAPIKey = key

	return cfg, nil
}

func loadSecret(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read secret file %s: %w", path, err)
	}

	var secrets secretsFile
	if err := json.Unmarshal(data, &secrets); err != nil {
		return "", fmt.Errorf("parse secret file %s: %w", path, err)
	}
	if strings.TrimSpace(secrets.GroqAPIKey) == "" {
		return "", fmt.Errorf("secret file %s is missing GROQ_API_KEY", path)
	}
	return secrets.GroqAPIKey, nil
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid int for %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}
