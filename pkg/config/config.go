package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Image provider names accepted in IMAGE_PROVIDER.
const (
	ImageProviderDisabled = "disabled"
	ImageProviderRemote   = "remote"
	ImageProviderGemini   = "gemini"
)

type Config struct {
	Port     string
	LogJSON  bool
	LogDebug bool

	DatabaseURL string
	RedisURL    string
	SessionTTL  time.Duration

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	SeedFile     string
	MediaDir     string
	MediaBaseURL string

	ImageProvider    string
	ImageGenerateURL string
	ImageEditURL     string
	ImageTimeout     time.Duration

	GeminiAPIKey        string
	GeminiImageModel    string
	GeminiEditModel     string
	GoogleCloudProject  string
	GoogleCloudLocation string
}

// New returns a viper instance bound to the environment with all defaults set.
// A .env file in the working directory is loaded first when present.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("SESSION_TTL", 24*time.Hour)
	v.SetDefault("JWT_SECRET", "dev-secret-change")
	v.SetDefault("JWT_ISSUER", "win")
	v.SetDefault("JWT_TTL_MINUTES", 60)
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("MEDIA_DIR", "./uploads/media")
	v.SetDefault("MEDIA_BASE_URL", "/media")
	v.SetDefault("IMAGE_PROVIDER", ImageProviderDisabled)
	v.SetDefault("IMAGE_GENERATE_URL", "")
	v.SetDefault("IMAGE_EDIT_URL", "")
	v.SetDefault("IMAGE_TIMEOUT", 60*time.Second)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_IMAGE_MODEL", "")
	v.SetDefault("GEMINI_EDIT_MODEL", "")
	v.SetDefault("GOOGLE_CLOUD_PROJECT", "")
	v.SetDefault("GOOGLE_CLOUD_LOCATION", "")
	return v
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	return FromViper(New())
}

func FromViper(v *viper.Viper) Config {
	return Config{
		Port:     v.GetString("PORT"),
		LogJSON:  v.GetBool("LOG_JSON"),
		LogDebug: v.GetBool("LOG_DEBUG"),

		DatabaseURL: strings.TrimSpace(v.GetString("DATABASE_URL")),
		RedisURL:    strings.TrimSpace(v.GetString("REDIS_URL")),
		SessionTTL:  v.GetDuration("SESSION_TTL"),

		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		JWTTTLMinutes: v.GetInt("JWT_TTL_MINUTES"),

		SeedFile:     strings.TrimSpace(v.GetString("SEED_FILE")),
		MediaDir:     v.GetString("MEDIA_DIR"),
		MediaBaseURL: v.GetString("MEDIA_BASE_URL"),

		ImageProvider:    strings.ToLower(strings.TrimSpace(v.GetString("IMAGE_PROVIDER"))),
		ImageGenerateURL: v.GetString("IMAGE_GENERATE_URL"),
		ImageEditURL:     v.GetString("IMAGE_EDIT_URL"),
		ImageTimeout:     v.GetDuration("IMAGE_TIMEOUT"),

		GeminiAPIKey:        v.GetString("GEMINI_API_KEY"),
		GeminiImageModel:    v.GetString("GEMINI_IMAGE_MODEL"),
		GeminiEditModel:     v.GetString("GEMINI_EDIT_MODEL"),
		GoogleCloudProject:  v.GetString("GOOGLE_CLOUD_PROJECT"),
		GoogleCloudLocation: v.GetString("GOOGLE_CLOUD_LOCATION"),
	}
}
