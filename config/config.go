package config

import (
	"log"
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
	Timezone          string `mapstructure:"TIMEZONE"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Auth.
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	TokenTTLHours        int    `mapstructure:"TOKEN_TTL_HOURS"`
	AdminRegistrationKey string `mapstructure:"ADMIN_REGISTRATION_KEY"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisOTPDB    int    `mapstructure:"REDIS_OTP_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`
	QueueEnabled  bool   `mapstructure:"QUEUE_ENABLED"`

	// Payments.
	StripeKey             string  `mapstructure:"STRIPE_KEY"`
	CheckoutSuccessURL    string  `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL     string  `mapstructure:"CHECKOUT_CANCEL_URL"`
	Currency              string  `mapstructure:"CURRENCY"`
	FreeShippingThreshold int64   `mapstructure:"FREE_SHIPPING_THRESHOLD"`
	ShippingFee           int64   `mapstructure:"SHIPPING_FEE"`
	TaxRate               float64 `mapstructure:"TAX_RATE"`

	// Cloudinary. Media is stored inline when the cloud name is empty.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`

	NotifyAdminEmail string `mapstructure:"NOTIFY_ADMIN_EMAIL"`

	// SMTP. Notifications are only logged when the host is empty.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("TIMEZONE", "Asia/Kolkata")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "resonance")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL_HOURS", 24*7)
	v.SetDefault("ADMIN_REGISTRATION_KEY", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_OTP_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("QUEUE_ENABLED", false)
	v.SetDefault("STRIPE_KEY", "")
	v.SetDefault("CHECKOUT_SUCCESS_URL", "http://localhost:3000/checkout/success")
	v.SetDefault("CHECKOUT_CANCEL_URL", "http://localhost:3000/cart")
	v.SetDefault("CURRENCY", "inr")
	v.SetDefault("FREE_SHIPPING_THRESHOLD", 5000)
	v.SetDefault("SHIPPING_FEE", 200)
	v.SetDefault("TAX_RATE", 0.18)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("MAIL_FROM", "Resonance <no-reply@resonance.local>")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("CLOUDINARY_FOLDER", "resonance")
	v.SetDefault("NOTIFY_ADMIN_EMAIL", "")
}

// LoadConfig reads config.yaml (from "." or "./config") and the environment
// into AppConfig. Environment variables win over the file.
func LoadConfig() {
	cfg, err := Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load resolves a Config from the given viper instance.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Currency = strings.ToLower(cfg.Currency)
	return cfg, nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
