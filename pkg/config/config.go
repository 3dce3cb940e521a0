package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	AppURL   string

	// AI provider
	AIProvider    string
	GeminiApiKey  string
	GeminiModel   string
	OllamaBaseURL string
	OllamaModel   string

	// Supabase (auth + profiles). Empty URL means guest mode.
	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	DatabaseURL string

	// Interpretation cache
	ReadingCacheTTL        time.Duration
	ReadingCacheMaxEntries int

	DailyTimezone    string
	FreeHistoryLimit int
	AdminAPIKeyHash  string

	// Daily delivery
	WhatsAppToken         string
	WhatsAppPhoneNumberID string
	WhatsAppAPIURL        string
	DeliveryHour          int
	FirebaseCredentials   string
	GoogleProjectID       string
	GooglePubSubTopic     string
	GoogleCredentials     string

	// Chroma (semantic search over generated card content)
	ChromaAPIKey   string
	ChromaTenant   string
	ChromaDatabase string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "release"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		AppURL:   getEnv("APP_URL", "http://localhost:5173"),

		AIProvider:    getEnv("AI_PROVIDER", "gemini"),
		GeminiApiKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),

		SupabaseURL:       getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:   getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		ReadingCacheTTL:        getDuration("READING_CACHE_TTL", 24*time.Hour),
		ReadingCacheMaxEntries: getInt("READING_CACHE_MAX_ENTRIES", 500),

		DailyTimezone:    getEnv("DAILY_TIMEZONE", "UTC"),
		FreeHistoryLimit: getInt("FREE_HISTORY_LIMIT", 20),
		AdminAPIKeyHash:  getEnv("ADMIN_API_KEY_HASH", ""),

		WhatsAppToken:         getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppPhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		WhatsAppAPIURL:        getEnv("WHATSAPP_API_URL", "https://graph.facebook.com/v20.0"),
		DeliveryHour:          getInt("DELIVERY_HOUR", 8),
		FirebaseCredentials:   getEnv("FIREBASE_CREDENTIALS", ""),
		GoogleProjectID:       getEnv("GOOGLE_PROJECT_ID", ""),
		GooglePubSubTopic:     getEnv("GOOGLE_PUBSUB_TOPIC", "daily-card"),
		GoogleCredentials:     getEnv("GOOGLE_CREDENTIALS", ""),

		ChromaAPIKey:   getEnv("CHROMA_API_KEY", ""),
		ChromaTenant:   getEnv("CHROMA_TENANT", ""),
		ChromaDatabase: getEnv("CHROMA_DATABASE", ""),
	}
}

// AIEnabled reports whether any interpretation provider can be built.
func (c *Config) AIEnabled() bool {
	switch c.AIProvider {
	case "ollama":
		return c.OllamaBaseURL != ""
	case "auto":
		return c.GeminiApiKey != "" || c.OllamaBaseURL != ""
	default:
		return c.GeminiApiKey != ""
	}
}

// AuthEnabled is false in guest mode.
func (c *Config) AuthEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

// Location returns the timezone used to decide "today" for daily cards.
// Unknown names fall back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DailyTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
