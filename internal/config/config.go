package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Provider names accepted in LLM_PROVIDER.
const (
	ProviderGroq   = "groq"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

type Config struct {
	AppPort       int    `mapstructure:"APP_PORT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFile       string `mapstructure:"LOG_FILE"`
	DocsDir       string `mapstructure:"PDF_FOLDER"`
	VectorDBPath  string `mapstructure:"VECTOR_DB_PATH"`
	LLMProvider   string `mapstructure:"LLM_PROVIDER"`
	GroqAPIKey    string `mapstructure:"GROQ_API_KEY"`
	GroqModel     string `mapstructure:"GROQ_MODEL"`
	GroqBaseURL   string `mapstructure:"GROQ_BASE_URL"`
	OllamaURL     string `mapstructure:"OLLAMA_URL"`
	OllamaModel   string `mapstructure:"OLLAMA_MODEL"`
	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel   string `mapstructure:"GEMINI_MODEL"`
	ChunkSize     int    `mapstructure:"CHUNK_SIZE"`
	ChunkOverlap  int    `mapstructure:"CHUNK_OVERLAP"`
	RetrievalK    int    `mapstructure:"DEFAULT_K_RETRIEVAL"`
	MaxInputChars int    `mapstructure:"MAX_INPUT_CHARS"`
	CORSOrigin    string `mapstructure:"CORS_ORIGIN"`

	// Rebuild behavior for the persisted vector index.
	RebuildAttempts int           `mapstructure:"MAX_REBUILD_ATTEMPTS"`
	RetryDelay      time.Duration `mapstructure:"RETRY_DELAY"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 5001)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("PDF_FOLDER", "content")
	viper.SetDefault("VECTOR_DB_PATH", "vector_store/index.db")
	viper.SetDefault("LLM_PROVIDER", ProviderGroq)
	viper.SetDefault("GROQ_API_KEY", "")
	viper.SetDefault("GROQ_MODEL", "llama3-8b-8192")
	viper.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	viper.SetDefault("OLLAMA_URL", "http://ollama:11434")
	viper.SetDefault("OLLAMA_MODEL", "llama3")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("CHUNK_SIZE", 1000)
	viper.SetDefault("CHUNK_OVERLAP", 200)
	viper.SetDefault("DEFAULT_K_RETRIEVAL", 5)
	viper.SetDefault("MAX_INPUT_CHARS", 5000)
	viper.SetDefault("CORS_ORIGIN", "*")
	viper.SetDefault("MAX_REBUILD_ATTEMPTS", 3)
	viper.SetDefault("RETRY_DELAY", "500ms")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {

			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable before the system starts.
// The selected LLM provider must have its credentials or endpoint set, and the
// chunking parameters must describe a splittable window.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LLMProvider) {
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY environment variable is required")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
	case ProviderOllama:
		if c.OllamaURL == "" {
			return fmt.Errorf("OLLAMA_URL environment variable is required")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q, expected one of: groq, ollama, gemini", c.LLMProvider)
	}

	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be a positive integer")
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be non-negative and smaller than CHUNK_SIZE")
	}
	if c.RetrievalK <= 0 {
		return fmt.Errorf("DEFAULT_K_RETRIEVAL must be a positive integer")
	}

	return nil
}
