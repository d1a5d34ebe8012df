package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Redis  RedisConfig
	Logger LoggerConfig
	Quiz   QuizConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// LLMConfig selects and configures the upstream completion provider.
type LLMConfig struct {
	Provider    string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	OpenAI      OpenAIConfig
	Ollama      OllamaConfig
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type OllamaConfig struct {
	ServerURL string `yaml:"server_url"`
	Model     string `yaml:"model"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Env   string
	Level string
}

type QuizConfig struct {
	ResultTTL time.Duration
}

// RequiresAPIKey reports whether the configured provider needs a secret.
func (c LLMConfig) RequiresAPIKey() bool {
	return c.Provider == ProviderOpenAI
}

// APIKeyMissing reports whether the provider needs a key and none was set.
func (c LLMConfig) APIKeyMissing() bool {
	return c.RequiresAPIKey() && strings.TrimSpace(c.OpenAI.APIKey) == ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.body_limit", 1024*1024)

	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.timeout", 60)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 2000)
	v.SetDefault("llm.openai.model", "gpt-3.5-turbo")
	v.SetDefault("llm.ollama.server_url", "http://localhost:11434")
	v.SetDefault("llm.ollama.model", "llama3")

	v.SetDefault("redis.db", 0)
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("quiz.result_ttl", 3600)
}

// LoadConfig reads config.yaml when present and applies environment overrides.
// A missing config file is not an error; defaults and env cover every key.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			Timeout:     time.Duration(v.GetInt("llm.timeout")) * time.Second,
			Temperature: v.GetFloat64("llm.temperature"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
			OpenAI: OpenAIConfig{
				APIKey:  v.GetString("llm.openai.api_key"),
				Model:   v.GetString("llm.openai.model"),
				BaseURL: v.GetString("llm.openai.base_url"),
			},
			Ollama: OllamaConfig{
				ServerURL: v.GetString("llm.ollama.server_url"),
				Model:     v.GetString("llm.ollama.model"),
			},
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		Quiz: QuizConfig{
			ResultTTL: time.Duration(v.GetInt("quiz.result_ttl")) * time.Second,
		},
	}

	// Override with the conventional environment variable names
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.LLM.OpenAI.APIKey = apiKey
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.LLM.OpenAI.Model = model
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.LLM.OpenAI.BaseURL = baseURL
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		cfg.LLM.Provider = strings.ToLower(provider)
	}
	if serverURL := os.Getenv("OLLAMA_SERVER_URL"); serverURL != "" {
		cfg.LLM.Ollama.ServerURL = serverURL
	}
	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		cfg.LLM.Ollama.Model = model
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		cfg.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Logger.Env = env
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logger.Level = level
	}

	return cfg
}
