// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Reports  ReportConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TableTTLHours int
}

// ReportConfig holds the classification constants used by the KPI engine.
// Two SLA thresholds exist on purpose: vendor on-time and RM SLA use the
// short one, order delivery tracking uses the long one.
type ReportConfig struct {
	VendorSLADays     int
	DeliverySLADays   int
	SlowMovingDays    int
	DeadStockDays     int
	StockRedMaxQty    float64
	StockYellowMaxQty float64
	O2CMaxValidDays   int
	LocationPrefix    string
	RawMaterialGroup  string
	PackagingGroup    string
	VendorTargetPct   float64
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 30)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})

		viper.SetDefault("DB_ENABLED", false)
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "kpidash")
		viper.SetDefault("DB_SSLMODE", "disable")

		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_TABLE_TTL_HOURS", 12)

		viper.SetDefault("REPORT_VENDOR_SLA_DAYS", 10)
		viper.SetDefault("REPORT_DELIVERY_SLA_DAYS", 15)
		viper.SetDefault("REPORT_SLOW_MOVING_DAYS", 60)
		viper.SetDefault("REPORT_DEAD_STOCK_DAYS", 365)
		viper.SetDefault("REPORT_STOCK_RED_MAX_QTY", 50000.0)
		viper.SetDefault("REPORT_STOCK_YELLOW_MAX_QTY", 200000.0)
		viper.SetDefault("REPORT_O2C_MAX_VALID_DAYS", 365)
		viper.SetDefault("REPORT_LOCATION_PREFIX", "LF-")
		viper.SetDefault("REPORT_RAW_MATERIAL_GROUP", "RM")
		viper.SetDefault("REPORT_PACKAGING_GROUP", "PM")
		viper.SetDefault("REPORT_VENDOR_TARGET_PCT", 95.0)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Enabled:  viper.GetBool("DB_ENABLED"),
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:       viper.GetBool("CACHE_ENABLED"),
				RedisURL:      viper.GetString("REDIS_URL"),
				RedisHost:     viper.GetString("REDIS_HOST"),
				RedisPort:     viper.GetString("REDIS_PORT"),
				RedisPassword: viper.GetString("REDIS_PASSWORD"),
				RedisDB:       viper.GetInt("REDIS_DB"),
				TableTTLHours: viper.GetInt("CACHE_TABLE_TTL_HOURS"),
			},
			Reports: ReportConfig{
				VendorSLADays:     viper.GetInt("REPORT_VENDOR_SLA_DAYS"),
				DeliverySLADays:   viper.GetInt("REPORT_DELIVERY_SLA_DAYS"),
				SlowMovingDays:    viper.GetInt("REPORT_SLOW_MOVING_DAYS"),
				DeadStockDays:     viper.GetInt("REPORT_DEAD_STOCK_DAYS"),
				StockRedMaxQty:    viper.GetFloat64("REPORT_STOCK_RED_MAX_QTY"),
				StockYellowMaxQty: viper.GetFloat64("REPORT_STOCK_YELLOW_MAX_QTY"),
				O2CMaxValidDays:   viper.GetInt("REPORT_O2C_MAX_VALID_DAYS"),
				LocationPrefix:    viper.GetString("REPORT_LOCATION_PREFIX"),
				RawMaterialGroup:  viper.GetString("REPORT_RAW_MATERIAL_GROUP"),
				PackagingGroup:    viper.GetString("REPORT_PACKAGING_GROUP"),
				VendorTargetPct:   viper.GetFloat64("REPORT_VENDOR_TARGET_PCT"),
			},
		}
	})

	return instance
}
