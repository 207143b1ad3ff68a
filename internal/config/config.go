package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort            string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL         string `env:"DATABASE_URL,required"`
	JWTSecret           string `env:"JWT_SECRET,required"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`
	LLMAPIKey           string `env:"LLM_API_KEY"`
	LLMBaseURL          string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel            string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	RedisAddr           string `env:"REDIS_ADDR"`
	RedisPassword       string `env:"REDIS_PASSWORD"`
	RedisDB             int    `env:"REDIS_DB" envDefault:"0"`
	QuestionCacheTTLSec int    `env:"QUESTION_CACHE_TTL_SECONDS" envDefault:"60"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
