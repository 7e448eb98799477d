package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const defaultKeyPrefix = "fruitStore"

type Config struct {
	ServicePort        string
	MetricsPort        string
	Environment        string
	LogLevel           string
	CORSAllowedOrigins []string
	MongoDBConfig      MongoDBConfig
	KafkaConfig        KafkaConfig
	StorageConfig      StorageConfig
	RedisConfig        RedisConfig
	TracingConfig      TracingConfig
	AuthConfig         AuthConfig
}

type MongoDBConfig struct {
	URI    string
	DBHost string
	DBPort string
	DBName string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type StorageConfig struct {
	Region          string
	Endpoint        string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	KeyPrefix       string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

type TracingConfig struct {
	CollectorHost string
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	AdminUsers map[string]string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort:        getEnv("SERVICE_PORT", "5000"),
		MetricsPort:        getEnv("METRICS_PORT", "9090"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		MongoDBConfig: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBHost: os.Getenv("DB_HOST"),
			DBPort: os.Getenv("DB_PORT"),
			DBName: getEnv("DB_NAME", "fruit_store"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "catalog"),
		},
		StorageConfig: StorageConfig{
			Region:          os.Getenv("B2_REGION"),
			Endpoint:        os.Getenv("B2_ENDPOINT"),
			Bucket:          os.Getenv("B2_BUCKET"),
			AccessKeyID:     os.Getenv("B2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("B2_SECRET_ACCESS_KEY"),
			KeyPrefix:       NormalizeKeyPrefix(os.Getenv("B2_KEY_PREFIX")),
		},
		RedisConfig: RedisConfig{
			Address:  os.Getenv("REDIS_ADDRESS"),
			Password: os.Getenv("REDIS_PASSWORD"),
			TTL:      time.Minute,
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		AuthConfig: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			TokenTTL:   2 * time.Hour,
			AdminUsers: ParseAdminUsers(os.Getenv("ADMIN_USERS")),
		},
	}

	brokerPartition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	if err == nil {
		conf.KafkaConfig.BrokerPartition = brokerPartition
	}

	redisDB, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err == nil {
		conf.RedisConfig.DB = redisDB
	}

	if ttl, err := time.ParseDuration(os.Getenv("REDIS_TTL")); err == nil {
		conf.RedisConfig.TTL = ttl
	}

	if ttl, err := time.ParseDuration(os.Getenv("JWT_TTL")); err == nil {
		conf.AuthConfig.TokenTTL = ttl
	}

	return &conf
}

// MongoURI prefers MONGODB_URI and falls back to DB_HOST/DB_PORT.
func (c MongoDBConfig) MongoURI() string {
	if c.URI != "" {
		return c.URI
	}

	return "mongodb://" + c.DBHost + ":" + c.DBPort
}

// NormalizeKeyPrefix turns B2_KEY_PREFIX into a single path segment. Object
// keys are recovered from image URLs as their last two segments, so a nested
// prefix would not round trip.
func NormalizeKeyPrefix(raw string) string {
	prefix := strings.Trim(strings.TrimSpace(raw), "/")
	if prefix == "" {
		return defaultKeyPrefix
	}

	if strings.Contains(prefix, "/") {
		normalized := strings.ReplaceAll(prefix, "/", "-")
		log.Warn().Str("component", "NormalizeKeyPrefix").Str("prefix", raw).Str("normalized", normalized).
			Msg("B2_KEY_PREFIX must be a single path segment")
		return normalized
	}

	return prefix
}

// ParseAdminUsers reads "user:bcrypt-hash" pairs separated by commas.
// Entries without a colon are skipped.
func ParseAdminUsers(raw string) map[string]string {
	users := map[string]string{}
	for _, entry := range splitList(raw) {
		name, hash, ok := strings.Cut(entry, ":")
		if !ok || name == "" || hash == "" {
			continue
		}
		users[name] = hash
	}

	return users
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
