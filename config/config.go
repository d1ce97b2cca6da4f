package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	// TrustedProxies lists the proxies whose X-Forwarded-For is honoured.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// Entity store.
	Store             string `mapstructure:"STORE"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	MongoTransactions bool   `mapstructure:"MONGO_TRANSACTIONS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Identity verification.
	AuthProvider            string        `mapstructure:"AUTH_PROVIDER"`
	FirebaseCredentialsFile string        `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	JWTSecret               string        `mapstructure:"JWT_SECRET"`
	AuthCacheTTL            time.Duration `mapstructure:"AUTH_CACHE_TTL"`

	// Payments.
	StripeKey           string        `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string        `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	CheckoutCurrency    string        `mapstructure:"CHECKOUT_CURRENCY"`
	ClientDomain        string        `mapstructure:"CLIENT_DOMAIN"`
	PaymentTimeout      time.Duration `mapstructure:"PAYMENT_TIMEOUT"`
	BookingPaymentFlow  string        `mapstructure:"BOOKING_PAYMENT_FLOW"`
	PaymentRecordStatus string        `mapstructure:"PAYMENT_RECORD_STATUS"`
	ReconcileMaxRetry   int           `mapstructure:"RECONCILE_MAX_RETRY"`

	// Booking events.
	KafkaBrokers []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string   `mapstructure:"KAFKA_TOPIC"`

	// Image storage.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("TRUSTED_PROXIES", []string{})
	v.SetDefault("STORE", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "decor-service")
	v.SetDefault("MONGO_TRANSACTIONS", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("AUTH_PROVIDER", "firebase")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "homeDecorationServiceAdminSDK.json")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("AUTH_CACHE_TTL", 10*time.Minute)
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	v.SetDefault("CHECKOUT_CURRENCY", "bdt")
	v.SetDefault("CLIENT_DOMAIN", "http://localhost:5173")
	v.SetDefault("PAYMENT_TIMEOUT", 10*time.Second)
	v.SetDefault("BOOKING_PAYMENT_FLOW", "checkout")
	v.SetDefault("PAYMENT_RECORD_STATUS", "completed")
	v.SetDefault("RECONCILE_MAX_RETRY", 8)
	v.SetDefault("KAFKA_BROKERS", []string{})
	v.SetDefault("KAFKA_TOPIC", "booking-events")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UsesMemoryStore reports whether the in-process store replaces MongoDB.
func UsesMemoryStore() bool {
	return AppConfig.Store == "memory"
}
