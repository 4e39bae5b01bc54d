package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	GeminiKey     string
	OpenAIKey     string
	ElevenLabsKey string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []netip.Prefix

	Agent  AgentConfig
	Speech SpeechConfig
	Fetch  FetchConfig
}

// AgentConfig selects the language model provider and the model used by
// each of the two agents. ChatInstruction replaces the final chat turn and
// may use the {language} and {schema} placeholders.
type AgentConfig struct {
	Provider        string `yaml:"provider"`
	ExtractorModel  string `yaml:"extractor_model"`
	ChatModel       string `yaml:"chat_model"`
	BaseURL         string `yaml:"base_url"`
	ChatInstruction string `yaml:"chat_instruction"`
}

type SpeechConfig struct {
	ModelID      string `yaml:"model_id"`
	BaseURL      string `yaml:"base_url"`
	OutputFormat string `yaml:"output_format"`
	FrameSize    int    `yaml:"frame_size"`
}

type FetchConfig struct {
	UserAgent      string `yaml:"user_agent"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		GeminiKey:                os.Getenv("GEMINI_API_KEY"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		ElevenLabsKey:            os.Getenv("ELEVENLABS_API_KEY"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimitRPS = rps
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimitBurst = burst
	}

	proxies, err := ParseTrustedProxies(os.Getenv("TRUSTED_PROXIES"))
	if err != nil {
		return nil, err
	}
	cfg.TrustedProxies = proxies

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	if err := cfg.LoadFromYAML(path); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Agent  AgentConfig  `yaml:"agent"`
		Speech SpeechConfig `yaml:"speech"`
		Fetch  FetchConfig  `yaml:"fetch"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlConfig.Agent.Provider != "" {
		c.Agent.Provider = strings.ToLower(yamlConfig.Agent.Provider)
	}
	if yamlConfig.Agent.ExtractorModel != "" {
		c.Agent.ExtractorModel = yamlConfig.Agent.ExtractorModel
	}
	if yamlConfig.Agent.ChatModel != "" {
		c.Agent.ChatModel = yamlConfig.Agent.ChatModel
	}
	if yamlConfig.Agent.BaseURL != "" {
		c.Agent.BaseURL = yamlConfig.Agent.BaseURL
	}
	if yamlConfig.Agent.ChatInstruction != "" {
		c.Agent.ChatInstruction = yamlConfig.Agent.ChatInstruction
	}

	if yamlConfig.Speech.ModelID != "" {
		c.Speech.ModelID = yamlConfig.Speech.ModelID
	}
	if yamlConfig.Speech.BaseURL != "" {
		c.Speech.BaseURL = yamlConfig.Speech.BaseURL
	}
	if yamlConfig.Speech.OutputFormat != "" {
		c.Speech.OutputFormat = yamlConfig.Speech.OutputFormat
	}
	if yamlConfig.Speech.FrameSize > 0 {
		c.Speech.FrameSize = yamlConfig.Speech.FrameSize
	}

	if yamlConfig.Fetch.UserAgent != "" {
		c.Fetch.UserAgent = yamlConfig.Fetch.UserAgent
	}
	if yamlConfig.Fetch.TimeoutSeconds > 0 {
		c.Fetch.TimeoutSeconds = yamlConfig.Fetch.TimeoutSeconds
	}

	return nil
}

func (c *Config) SetDefaults() {
	if c.Env == "" {
		c.Env = "development"
	}
	if c.ServiceName == "" {
		c.ServiceName = "culinary-agent"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "1.0.0"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.RateLimitRPS <= 0 {
		c.RateLimitRPS = 5
	}
	if c.RateLimitBurst <= 0 {
		c.RateLimitBurst = 10
	}

	if c.Agent.Provider == "" {
		c.Agent.Provider = ProviderGemini
	}
	if c.Agent.ExtractorModel == "" {
		c.Agent.ExtractorModel = defaultModel(c.Agent.Provider)
	}
	if c.Agent.ChatModel == "" {
		c.Agent.ChatModel = defaultModel(c.Agent.Provider)
	}

	if c.Speech.ModelID == "" {
		c.Speech.ModelID = "eleven_flash_v2_5"
	}
	if c.Speech.BaseURL == "" {
		c.Speech.BaseURL = "https://api.elevenlabs.io"
	}
	if c.Speech.OutputFormat == "" {
		c.Speech.OutputFormat = "mp3_44100_128"
	}
	if c.Speech.FrameSize <= 0 {
		c.Speech.FrameSize = 4096
	}

	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = 30
	}
}

func defaultModel(provider string) string {
	if provider == ProviderOpenAI {
		return "gpt-4o-mini"
	}
	return "gemini-2.0-flash"
}

// ParseTrustedProxies reads a comma separated list of CIDRs or single
// addresses ("10.0.0.0/8,192.0.2.10").
func ParseTrustedProxies(raw string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", item, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", item, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// OTLPHeaders parses OTEL_EXPORTER_OTLP_HEADERS ("k1=v1,k2=v2").
func (c *Config) OTLPHeaders() map[string]string {
	if c.OtelExporterOTLPHeaders == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(c.OtelExporterOTLPHeaders, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers
}

func (c *Config) validate() error {
	switch c.Agent.Provider {
	case ProviderGemini:
		if c.GeminiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown agent provider %q", c.Agent.Provider)
	}
	if c.ElevenLabsKey == "" {
		return fmt.Errorf("ELEVENLABS_API_KEY is required")
	}
	return nil
}
