package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const DefaultPath = "./config/config.yaml"

type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (p Postgres) ConnStr() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s", p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode)
}

type Nats struct {
	Enabled           bool   `mapstructure:"enabled"`
	Host              string `mapstructure:"host"`
	Port              string `mapstructure:"port"`
	Stream            string `mapstructure:"stream"`
	OrdersSubject     string `mapstructure:"ordersSubject"`
	IngredientSubject string `mapstructure:"ingredientsSubject"`
}

func (n Nats) ConnStr() string {
	return fmt.Sprintf("nats://%s:%s", n.Host, n.Port)
}

func (n Nats) Subjects() []string {
	return []string{n.OrdersSubject, n.IngredientSubject}
}

// Square holds the catalog/payments platform settings. AccessToken is only the
// fallback credential; requests normally carry their own.
type Square struct {
	BaseURL     string        `mapstructure:"baseURL"`
	Version     string        `mapstructure:"version"`
	AccessToken string        `mapstructure:"accessToken"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type LLM struct {
	Provider        string  `mapstructure:"provider"`
	Model           string  `mapstructure:"model"`
	APIKey          string  `mapstructure:"apiKey"`
	BaseURL         string  `mapstructure:"baseURL"`
	Temperature     float64 `mapstructure:"temperature"`
	MaxTokens       int     `mapstructure:"maxTokens"`
	Project         string  `mapstructure:"project"`
	Location        string  `mapstructure:"location"`
	CredentialsFile string  `mapstructure:"credentialsFile"`
}

type Images struct {
	BaseURL string        `mapstructure:"baseURL"`
	APIKey  string        `mapstructure:"apiKey"`
	Model   string        `mapstructure:"model"`
	Size    string        `mapstructure:"size"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Server struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Metrics struct {
	Namespace string `mapstructure:"namespace"`
}

type Ledger struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queueSize"`
}

type Config struct {
	Postgres Postgres `mapstructure:"postgres"`
	Nats     Nats     `mapstructure:"nats"`
	Square   Square   `mapstructure:"square"`
	LLM      LLM      `mapstructure:"llm"`
	Images   Images   `mapstructure:"images"`
	Server   Server   `mapstructure:"server"`
	Metrics  Metrics  `mapstructure:"metrics"`
	Ledger   Ledger   `mapstructure:"ledger"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.database", "postgres")
	v.SetDefault("postgres.sslmode", "disable")

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.host", "localhost")
	v.SetDefault("nats.port", "4222")
	v.SetDefault("nats.stream", "ORDERING")
	v.SetDefault("nats.ordersSubject", "ordering.orders.summarized")
	v.SetDefault("nats.ingredientsSubject", "ordering.ingredients.changed")

	v.SetDefault("square.baseURL", "https://connect.squareupsandbox.com/v2")
	v.SetDefault("square.version", "2023-10-18")
	v.SetDefault("square.accessToken", "")
	v.SetDefault("square.timeout", 30*time.Second)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-3.5-turbo")
	v.SetDefault("llm.apiKey", "")
	v.SetDefault("llm.baseURL", "")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.maxTokens", 4000)
	v.SetDefault("llm.project", "")
	v.SetDefault("llm.location", "us-central1")
	v.SetDefault("llm.credentialsFile", "")

	v.SetDefault("images.baseURL", "https://api.openai.com/v1")
	v.SetDefault("images.apiKey", "")
	v.SetDefault("images.model", "dall-e-3")
	v.SetDefault("images.size", "1024x1024")
	v.SetDefault("images.timeout", 90*time.Second)

	v.SetDefault("metrics.namespace", "ordering")

	v.SetDefault("ledger.workers", 2)
	v.SetDefault("ledger.queueSize", 100)
}

// Load reads the YAML file at path (a missing file is not an error), then
// applies environment overrides. Keys map to env vars by replacing "." with "_".
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// secrets keep the names the deployment already uses
	for key, env := range map[string]string{
		"postgres.password":   "SUPABASE_DB",
		"square.accessToken":  "SQUARE_ACCESS_TOKEN",
		"llm.apiKey":          "OPENAI_API_KEY",
		"images.apiKey":       "OPENAI_API_KEY",
		"llm.credentialsFile": "GOOGLE_APPLICATION_CREDENTIALS",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfig is Load for main packages: any error is fatal.
func LoadConfig() *Config {
	cfg, err := Load(DefaultPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.LLM.Provider {
	case "openai", "ollama", "vertex":
	default:
		return fmt.Errorf("unsupported llm provider %q", c.LLM.Provider)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server port must be positive")
	}
	if c.Ledger.Workers < 1 {
		c.Ledger.Workers = 2
	}
	if c.Ledger.QueueSize < 1 {
		c.Ledger.QueueSize = 100
	}

	return nil
}
