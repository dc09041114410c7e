package config

import (
	"log"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	Env               string        `mapstructure:"ENV"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
	SessionSweep      time.Duration `mapstructure:"SESSION_SWEEP_INTERVAL"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Firebase Cloud Messaging.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	PushQueueEnabled        bool   `mapstructure:"PUSH_QUEUE_ENABLED"`

	// Announcement reminders.
	ReminderHour           int    `mapstructure:"REMINDER_HOUR"`
	ReminderTimezone       string `mapstructure:"REMINDER_TIMEZONE"`
	ReminderWindowMinDays  int    `mapstructure:"REMINDER_WINDOW_MIN_DAYS"`
	ReminderWindowMaxDays  int    `mapstructure:"REMINDER_WINDOW_MAX_DAYS"`
	ReminderUniqueDayIndex bool   `mapstructure:"REMINDER_UNIQUE_DAY_INDEX"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "itufk")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("SESSION_TTL", "720h")
	viper.SetDefault("SESSION_SWEEP_INTERVAL", "5m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")
	viper.SetDefault("PUSH_QUEUE_ENABLED", false)
	viper.SetDefault("REMINDER_HOUR", 17)
	viper.SetDefault("REMINDER_TIMEZONE", "Europe/Istanbul")
	viper.SetDefault("REMINDER_WINDOW_MIN_DAYS", 1)
	viper.SetDefault("REMINDER_WINDOW_MAX_DAYS", 7)
	viper.SetDefault("REMINDER_UNIQUE_DAY_INDEX", true)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// ReminderLocation resolves the wall-clock zone the daily reminder scan runs in.
// An unknown zone name falls back to the process local zone.
func ReminderLocation() *time.Location {
	if AppConfig.ReminderTimezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(AppConfig.ReminderTimezone)
	if err != nil {
		log.Printf("Unknown REMINDER_TIMEZONE %q, using local time", AppConfig.ReminderTimezone)
		return time.Local
	}
	return loc
}
