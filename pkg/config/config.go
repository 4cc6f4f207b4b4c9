package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	YouTube  YouTubeConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

type EmailConfig struct {
	ResendAPIKey string
	FromEmail    string
	// AdminEmail recibe las notificaciones de contacto y el resumen diario.
	AdminEmail string
}

type YouTubeConfig struct {
	APIKey    string
	ChannelID string
}

type StorageConfig struct {
	Bucket string
	Region string
}

func Load() *Config {
	godotenv.Load() // carga .env si existe

	adminEmail := os.Getenv("ADMIN_NOTIFICATION_EMAIL")
	if adminEmail == "" {
		adminEmail = os.Getenv("RESEND_FROM_EMAIL")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("RESEND_FROM_EMAIL", "Haiku Business <noreply@haiku.pe>"),
			AdminEmail:   adminEmail,
		},
		YouTube: YouTubeConfig{
			APIKey:    getEnv("YOUTUBE_API_KEY", ""),
			ChannelID: getEnv("YOUTUBE_CHANNEL_ID", "UCzcJvlXLGtg09CaIehpDsMw"),
		},
		Storage: StorageConfig{
			Bucket: getEnv("AWS_BUCKET_NAME", ""),
			Region: getEnv("AWS_REGION", "us-east-1"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
