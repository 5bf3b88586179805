package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Duration decodes "60s"-style strings from TOML and YAML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type ServerConfig struct {
	Port           string   `toml:"port" yaml:"port"`
	AllowedOrigins []string `toml:"allowed_origins" yaml:"allowed_origins"`
	SessionTTL     Duration `toml:"session_ttl" yaml:"session_ttl"`
	Debug          bool     `toml:"debug" yaml:"debug"`
}

type LLMConfig struct {
	Provider              string   `toml:"provider" yaml:"provider"`
	Model                 string   `toml:"model" yaml:"model"`
	ChatModel             string   `toml:"chat_model" yaml:"chat_model"`
	APIKey                string   `toml:"api_key" yaml:"api_key"`
	BaseURL               string   `toml:"base_url" yaml:"base_url"`
	Temperature           float32  `toml:"temperature" yaml:"temperature"`
	SupervisorTemperature float32  `toml:"supervisor_temperature" yaml:"supervisor_temperature"`
	MaxTokens             int      `toml:"max_tokens" yaml:"max_tokens"`
	Timeout               Duration `toml:"timeout" yaml:"timeout"`
	// Vertex selects the Vertex AI backend of the genai provider.
	Vertex   bool   `toml:"vertex" yaml:"vertex"`
	Project  string `toml:"project" yaml:"project"`
	Location string `toml:"location" yaml:"location"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri" yaml:"uri"`
	User     string `toml:"user" yaml:"user"`
	Password string `toml:"password" yaml:"password"`
}

type HistoryConfig struct {
	// Backend is one of memory, file, sqlite or memgraph.
	Backend  string         `toml:"backend" yaml:"backend"`
	Key      string         `toml:"key" yaml:"key"`
	Path     string         `toml:"path" yaml:"path"`
	Memgraph MemgraphConfig `toml:"memgraph" yaml:"memgraph"`
}

type ChatConfig struct {
	WindowMessages int `toml:"window_messages" yaml:"window_messages"`
	WindowChars    int `toml:"window_chars" yaml:"window_chars"`
}

type AuthConfig struct {
	Delay Duration `toml:"delay" yaml:"delay"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

type Config struct {
	Server  ServerConfig  `toml:"server" yaml:"server"`
	LLM     LLMConfig     `toml:"llm" yaml:"llm"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Chat    ChatConfig    `toml:"chat" yaml:"chat"`
	Auth    AuthConfig    `toml:"auth" yaml:"auth"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// Default returns a configuration that runs against Gemini with file-backed history.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
			SessionTTL:     Duration{24 * time.Hour},
		},
		LLM: LLMConfig{
			Provider:              "gemini",
			Model:                 "gemini-3-pro-preview",
			ChatModel:             "gemini-3-flash-preview",
			Temperature:           0.2,
			SupervisorTemperature: 0.1,
			MaxTokens:             4096,
			Timeout:               Duration{90 * time.Second},
		},
		History: HistoryConfig{
			Backend: "file",
			Key:     "agent_history",
			Path:    "data/history",
		},
		Chat: ChatConfig{
			WindowMessages: 20,
			WindowChars:    16000,
		},
		Auth: AuthConfig{Delay: Duration{1500 * time.Millisecond}},
		Log:  LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads a TOML or YAML file (by extension) on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	return cfg, nil
}

// Resolve loads path, or CONFIG_PATH, or config/config.toml when it exists, and
// falls back to Default. Environment overrides are applied and the result validated.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		if _, err := os.Stat("config/config.toml"); err == nil {
			path = "config/config.toml"
		}
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when present.
func (c *Config) ApplyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.ChatModel, "LLM_CHAT_MODEL")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	// LLM_API_KEY wins over the provider specific names.
	setString(&c.LLM.APIKey, "API_KEY")
	setString(&c.LLM.APIKey, "GEMINI_API_KEY")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setString(&c.History.Backend, "HISTORY_BACKEND")
	setString(&c.History.Path, "HISTORY_PATH")
	setString(&c.History.Memgraph.URI, "MEMGRAPH_URI")
	setString(&c.History.Memgraph.User, "MEMGRAPH_USER")
	setString(&c.History.Memgraph.Password, "MEMGRAPH_PASSWORD")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate checks that required fields are set and enumerations are known.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port cannot be empty")
	}

	switch strings.ToLower(c.LLM.Provider) {
	case "gemini", "genai", "openai", "claude", "ollama":
	default:
		return fmt.Errorf("unsupported llm provider: %s", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model cannot be empty")
	}
	if c.LLM.Temperature < 0 || c.LLM.SupervisorTemperature < 0 {
		return fmt.Errorf("llm temperatures must be >= 0")
	}

	switch strings.ToLower(c.History.Backend) {
	case "memory":
	case "file", "sqlite":
		if c.History.Path == "" {
			return fmt.Errorf("history.path cannot be empty for backend %s", c.History.Backend)
		}
	case "memgraph":
		if c.History.Memgraph.URI == "" {
			return fmt.Errorf("history.memgraph.uri cannot be empty")
		}
	default:
		return fmt.Errorf("unsupported history backend: %s", c.History.Backend)
	}
	if c.History.Key == "" {
		return fmt.Errorf("history.key cannot be empty")
	}

	if c.Chat.WindowMessages <= 0 {
		return fmt.Errorf("chat.window_messages must be > 0")
	}
	return nil
}
