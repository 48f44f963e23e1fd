package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv      string `mapstructure:"APP_ENV"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	GRPCPort    string `mapstructure:"GRPC_PORT"`
	MetricsAddr string `mapstructure:"METRICS_ADDR"`

	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisTimeout      time.Duration `mapstructure:"REDIS_TIMEOUT"`
	CacheHealthPeriod time.Duration `mapstructure:"CACHE_HEALTH_PERIOD"`

	CacheTTLRecommendations time.Duration `mapstructure:"CACHE_TTL_RECOMMENDATIONS"`
	CacheTTLContent         time.Duration `mapstructure:"CACHE_TTL_CONTENT"`
	CacheTTLQuiz            time.Duration `mapstructure:"CACHE_TTL_QUIZ"`
	CacheTTLUserProgress    time.Duration `mapstructure:"CACHE_TTL_USER_PROGRESS"`
	CacheTTLLearningPath    time.Duration `mapstructure:"CACHE_TTL_LEARNING_PATH"`

	OpenAIAPIKey     string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `mapstructure:"OPENAI_BASE_URL"`
	OpenAIModel      string        `mapstructure:"OPENAI_MODEL"`
	OpenAIEmbedModel string        `mapstructure:"OPENAI_EMBED_MODEL"`
	OpenAITimeout    time.Duration `mapstructure:"OPENAI_TIMEOUT"`
	AIRequestsPerSec float64       `mapstructure:"AI_REQUESTS_PER_SEC"`

	EmbedRetryAttempts uint          `mapstructure:"EMBED_RETRY_ATTEMPTS"`
	EmbedRetryInitial  time.Duration `mapstructure:"EMBED_RETRY_INITIAL"`
	EmbedRetryMax      time.Duration `mapstructure:"EMBED_RETRY_MAX"`

	AnalyzeConcurrency  int     `mapstructure:"ANALYZE_CONCURRENCY"`
	SimilarityThreshold float64 `mapstructure:"SIMILARITY_THRESHOLD"`
	DuplicateThreshold  float64 `mapstructure:"DUPLICATE_THRESHOLD"`
}

var keys = []string{
	"APP_ENV", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "GRPC_PORT", "METRICS_ADDR",
	"REDIS_ADDR", "REDIS_TIMEOUT", "CACHE_HEALTH_PERIOD",
	"CACHE_TTL_RECOMMENDATIONS", "CACHE_TTL_CONTENT", "CACHE_TTL_QUIZ", "CACHE_TTL_USER_PROGRESS", "CACHE_TTL_LEARNING_PATH",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "OPENAI_EMBED_MODEL", "OPENAI_TIMEOUT", "AI_REQUESTS_PER_SEC",
	"EMBED_RETRY_ATTEMPTS", "EMBED_RETRY_INITIAL", "EMBED_RETRY_MAX",
	"ANALYZE_CONCURRENCY", "SIMILARITY_THRESHOLD", "DUPLICATE_THRESHOLD",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("GRPC_PORT", ":50054")
	v.SetDefault("METRICS_ADDR", ":9104")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_TIMEOUT", 5*time.Second)
	v.SetDefault("CACHE_HEALTH_PERIOD", 30*time.Second)

	v.SetDefault("CACHE_TTL_RECOMMENDATIONS", time.Hour)
	v.SetDefault("CACHE_TTL_CONTENT", 24*time.Hour)
	v.SetDefault("CACHE_TTL_QUIZ", 7*24*time.Hour)
	v.SetDefault("CACHE_TTL_USER_PROGRESS", 30*time.Minute)
	v.SetDefault("CACHE_TTL_LEARNING_PATH", time.Hour)

	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	v.SetDefault("OPENAI_MODEL", "gpt-4-turbo-preview")
	v.SetDefault("OPENAI_EMBED_MODEL", "text-embedding-3-small")
	v.SetDefault("OPENAI_TIMEOUT", 60*time.Second)
	v.SetDefault("AI_REQUESTS_PER_SEC", 5.0)

	v.SetDefault("EMBED_RETRY_ATTEMPTS", 3)
	v.SetDefault("EMBED_RETRY_INITIAL", 4*time.Second)
	v.SetDefault("EMBED_RETRY_MAX", 10*time.Second)

	v.SetDefault("ANALYZE_CONCURRENCY", 4)
	v.SetDefault("SIMILARITY_THRESHOLD", 0.7)
	v.SetDefault("DUPLICATE_THRESHOLD", 0.85)
}

// LoadConfig reads app.env from path if present; environment variables always win.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}
	err = v.Unmarshal(&config)
	return
}

func (c Config) DSN() string {
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword +
		" dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=disable"
}
