package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV"`
	Port            string        `mapstructure:"PORT"`
	PathSvcUrl      string        `mapstructure:"PATH_SVC_URL"`
	AllowedOrigins  string        `mapstructure:"ALLOWED_ORIGINS"`
	REDIS_ADDR      string        `mapstructure:"REDIS_ADDR"`
	JWTAccessSecret string        `mapstructure:"JWT_ACCESS_SECRET"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

var keys = []string{"APP_ENV", "PORT", "PATH_SVC_URL", "ALLOWED_ORIGINS", "REDIS_ADDR", "JWT_ACCESS_SECRET", "REQUEST_TIMEOUT"}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", ":8080")
	v.SetDefault("PATH_SVC_URL", "localhost:50054")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REQUEST_TIMEOUT", 90*time.Second)
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

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
