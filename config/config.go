package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/kanda123-lab/querygen"
)

const (
	// DebugMode indicates service mode is debug.
	DebugMode = "debug"
	// TestMode indicates service mode is test.
	TestMode = "test"
	// ReleaseMode indicates service mode is release.
	ReleaseMode = "release"
)

// Store backends for saved queries.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

type Config struct {
	ServiceName string
	Environment string // debug, test, release
	HTTPPort    string

	DefaultDialect     string
	MaxQueryDepth      int
	TrailingPagination bool
	LenientDialectGaps bool

	StoreBackend string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Load reads .env when present, then the environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found")
	}

	config := Config{}

	config.ServiceName = cast.ToString(getOrReturnDefaultValue("SERVICE_NAME", "querygen"))
	config.Environment = cast.ToString(getOrReturnDefaultValue("ENVIRONMENT", DebugMode))
	config.HTTPPort = cast.ToString(getOrReturnDefaultValue("HTTP_PORT", ":8080"))

	config.DefaultDialect = cast.ToString(getOrReturnDefaultValue("DEFAULT_DIALECT", "postgresql"))
	config.MaxQueryDepth = cast.ToInt(getOrReturnDefaultValue("MAX_QUERY_DEPTH", 32))
	config.TrailingPagination = cast.ToBool(getOrReturnDefaultValue("TRAILING_PAGINATION", false))
	config.LenientDialectGaps = cast.ToBool(getOrReturnDefaultValue("LENIENT_DIALECT_GAPS", false))

	config.StoreBackend = cast.ToString(getOrReturnDefaultValue("STORE_BACKEND", StoreMemory))

	config.RedisAddr = cast.ToString(getOrReturnDefaultValue("REDIS_ADDR", "localhost:6379"))
	config.RedisPassword = cast.ToString(getOrReturnDefaultValue("REDIS_PASSWORD", ""))
	config.RedisDB = cast.ToInt(getOrReturnDefaultValue("REDIS_DB", 0))

	config.MongoURI = cast.ToString(getOrReturnDefaultValue("MONGO_URI", "mongodb://localhost:27017"))
	config.MongoDatabase = cast.ToString(getOrReturnDefaultValue("MONGO_DATABASE", "querygen"))
	config.MongoCollection = cast.ToString(getOrReturnDefaultValue("MONGO_COLLECTION", "queries"))

	return config
}

// LogLevel picks the logger level for the environment.
func (c Config) LogLevel() string {
	switch c.Environment {
	case DebugMode, TestMode:
		return "debug"
	default:
		return "info"
	}
}

// GeneratorOptions maps the generation settings to generator options.
func (c Config) GeneratorOptions() []querygen.Option {
	var opts []querygen.Option
	if c.MaxQueryDepth > 0 {
		opts = append(opts, querygen.WithMaxDepth(c.MaxQueryDepth))
	}
	if c.TrailingPagination {
		opts = append(opts, querygen.WithTrailingPagination())
	}
	if c.LenientDialectGaps {
		opts = append(opts, querygen.WithLenientDialectGaps())
	}
	return opts
}

func getOrReturnDefaultValue(key string, defaultValue any) any {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return defaultValue
}
