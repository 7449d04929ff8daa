package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`

	// Persistence.
	StorageBackend string `mapstructure:"STORAGE_BACKEND"` // memory, mongo or file
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`
	DataDir        string `mapstructure:"DATA_DIR"`

	// Redis configuration.
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB        int    `mapstructure:"REDIS_LOCK_DB"`
	RedisEventsDB      int    `mapstructure:"REDIS_EVENTS_DB"`
	RedisQueueDB       int    `mapstructure:"REDIS_QUEUE_DB"`
	EventsChannel      string `mapstructure:"EVENTS_CHANNEL"`
	EventsRedisEnabled bool   `mapstructure:"EVENTS_REDIS_ENABLED"`
	BookingLockBackend string `mapstructure:"BOOKING_LOCK_BACKEND"` // local or redis

	// Salon defaults.
	SalonOpenTime          string  `mapstructure:"SALON_OPEN_TIME"`
	SalonCloseTime         string  `mapstructure:"SALON_CLOSE_TIME"`
	SalonWorkingDays       string  `mapstructure:"SALON_WORKING_DAYS"`
	SalonDefaultCommission float64 `mapstructure:"SALON_DEFAULT_COMMISSION"`

	// Retouch outreach.
	RetouchThresholdDays    int    `mapstructure:"RETOUCH_THRESHOLD_DAYS"`
	RetouchScanCron         string `mapstructure:"RETOUCH_SCAN_CRON"`
	RetouchWorkerEnabled    bool   `mapstructure:"RETOUCH_WORKER_ENABLED"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("STORAGE_BACKEND", "memory")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "salonbook")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LOCK_DB", 0)
	viper.SetDefault("REDIS_EVENTS_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("EVENTS_CHANNEL", "salonbook:events")
	viper.SetDefault("EVENTS_REDIS_ENABLED", false)
	viper.SetDefault("BOOKING_LOCK_BACKEND", "local")
	viper.SetDefault("SALON_OPEN_TIME", "09:00")
	viper.SetDefault("SALON_CLOSE_TIME", "18:00")
	viper.SetDefault("SALON_WORKING_DAYS", "1,2,3,4,5,6")
	viper.SetDefault("SALON_DEFAULT_COMMISSION", 40)
	viper.SetDefault("RETOUCH_THRESHOLD_DAYS", 15)
	viper.SetDefault("RETOUCH_SCAN_CRON", "0 9 * * *")
	viper.SetDefault("RETOUCH_WORKER_ENABLED", false)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
}

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

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// WorkingDays parses SALON_WORKING_DAYS ("1,2,3") into weekday numbers.
func (c Config) WorkingDays() ([]int, error) {
	var days []int
	for _, part := range strings.Split(c.SalonWorkingDays, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 6 {
			return nil, fmt.Errorf("invalid working day %q", part)
		}
		days = append(days, d)
	}
	return days, nil
}

// Origins splits CORS_ORIGINS.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
