package model

import "time"

// Config is the explicit configuration object handed to every component at
// construction. Secrets are never defaulted here; they arrive via flags,
// environment variables or the config file.
type Config struct {
	News      NewsConfig      `yaml:"news" mapstructure:"news"`
	Synthesis SynthesisConfig `yaml:"synthesis" mapstructure:"synthesis"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Workspace WorkspaceConfig `yaml:"workspace" mapstructure:"workspace"`
	Deck      DeckConfig      `yaml:"deck" mapstructure:"deck"`
}

// NewsConfig points at the news platform and its token endpoint.
type NewsConfig struct {
	AuthURL      string `yaml:"auth_url" mapstructure:"auth_url"`
	ArticleURL   string `yaml:"article_url" mapstructure:"article_url"`
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
}

// SynthesisConfig configures the report synthesis collaborator.
type SynthesisConfig struct {
	// Provider selects the transport: "job" for the async job endpoint,
	// "openai" for direct chat completions.
	Provider     string        `yaml:"provider" mapstructure:"provider"`
	AuthURL      string        `yaml:"auth_url" mapstructure:"auth_url"`
	BaseURL      string        `yaml:"base_url" mapstructure:"base_url"`
	ClientID     string        `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string        `yaml:"client_secret" mapstructure:"client_secret"`
	Model        string        `yaml:"model" mapstructure:"model"`
	APIKey       string        `yaml:"api_key" mapstructure:"api_key"`
	TenantID     string        `yaml:"tenant_id" mapstructure:"tenant_id"`
	ClientTag    string        `yaml:"client_tag" mapstructure:"client_tag"`
	UserID       string        `yaml:"user_id" mapstructure:"user_id"`
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	MaxPolls     int           `yaml:"max_polls" mapstructure:"max_polls"`
}

// HTTPConfig covers the outbound HTTP behavior shared by the news client and
// the image downloader.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	// DownloadsPerSecond paces image downloads so the article host is not
	// hammered. Zero disables pacing.
	DownloadsPerSecond float64 `yaml:"downloads_per_second" mapstructure:"downloads_per_second"`
	// CheckRobots gates image downloads on the host's robots.txt.
	CheckRobots bool `yaml:"check_robots" mapstructure:"check_robots"`
}

// WorkspaceConfig names the on-disk layout of a run.
type WorkspaceConfig struct {
	BaseDir   string `yaml:"base_dir" mapstructure:"base_dir"`
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// DeckConfig selects the template and rendering variant.
type DeckConfig struct {
	// Templates maps location -> language -> template path.
	Templates map[string]map[string]string `yaml:"templates" mapstructure:"templates"`
	Location  string                       `yaml:"location" mapstructure:"location"`
	Language  string                       `yaml:"language" mapstructure:"language"`
}

// TemplatePath resolves the template for a (location, language) pair, falling
// back to the Chinese template of the location, then to the Hong Kong set.
func (d DeckConfig) TemplatePath(location, language string) string {
	set, ok := d.Templates[location]
	if !ok {
		set = d.Templates["香港"]
	}
	if set == nil {
		return ""
	}
	if path, ok := set[language]; ok && path != "" {
		return path
	}
	return set["cn"]
}

// DefaultConfig returns the built-in defaults. Endpoint addresses are blank
// placeholders; credentials always come from the environment.
func DefaultConfig() *Config {
	return &Config{
		News: NewsConfig{
			ClientID: "cio-backend",
		},
		Synthesis: SynthesisConfig{
			Provider:     "job",
			ClientID:     "cioinsight-api-client",
			Model:        "gemini-3-pro-preview",
			TenantID:     "GOLDHORSE",
			ClientTag:    "CIO",
			UserID:       "deckgen",
			PollInterval: 3 * time.Second,
			MaxPolls:     60,
		},
		HTTP: HTTPConfig{
			Timeout:            30 * time.Second,
			UserAgent:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			MaxBodyBytes:       20_000_000,
			DownloadsPerSecond: 2,
			CheckRobots:        false,
		},
		Workspace: WorkspaceConfig{
			BaseDir:   "input_articles",
			OutputDir: "output",
		},
		Deck: DeckConfig{
			Templates: map[string]map[string]string{
				"香港":   {"cn": "template/deck_hk_cn.pptx", "en": "template/deck_hk_en.pptx"},
				"中国大陆": {"cn": "template/deck_cn_cn.pptx", "en": "template/deck_cn_en.pptx"},
				"新加坡":  {"cn": "template/deck_hk_cn.pptx", "en": "template/deck_hk_en.pptx"},
			},
			Location: "香港",
			Language: "cn",
		},
	}
}
