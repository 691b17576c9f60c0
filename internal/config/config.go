package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Search              SearchConfig        `yaml:"search"`
	HTTP                HttpConfig          `yaml:"http"`
	RobotsCacheTTLHours int                 `yaml:"robots_cache_ttl_hours"`
	RateLimit           RateLimitConfig     `yaml:"rate_limit"`
	Pipeline            PipelineConfig      `yaml:"pipeline"`
	Extract             ExtractConfig       `yaml:"extract"`
	SelectorsFile       string              `yaml:"selectors_file"`
	Normalize           NormalizeConfig     `yaml:"normalize"`
	Export              ExportConfig        `yaml:"export"`
	Observability       ObservabilityConfig `yaml:"observability"`
}

type SearchConfig struct {
	BaseURL  string `yaml:"base_url"`
	PageSize int    `yaml:"page_size"`
	MaxPages int    `yaml:"max_pages"`
}

type HttpConfig struct {
	UserAgent                 string `yaml:"user_agent"`
	RequestTimeoutMS          int    `yaml:"request_timeout_ms"`
	MaxRetries                int    `yaml:"max_retries"`
	RetryDelayMS              int    `yaml:"retry_delay_ms"`
	FollowRedirects           bool   `yaml:"follow_redirects"`
	MaxIdleConnections        int    `yaml:"max_idle_connections"`
	MaxIdleConnectionsPerHost int    `yaml:"max_idle_connections_per_host"`
	IdleConnectionTimeoutS    int    `yaml:"idle_connection_timeout_s"`
	AcceptLanguage            string `yaml:"accept_language"`
	RespectRobots             bool   `yaml:"respect_robots"`
}

type RateLimitConfig struct {
	MaxConcurrentPerHost int     `yaml:"max_concurrent_per_host"`
	RequestsPerSecond    float64 `yaml:"requests_per_second"`
	Burst                int     `yaml:"burst"`
}

type PipelineConfig struct {
	DetailWorkers  int  `yaml:"detail_workers"`
	SkipDuplicates bool `yaml:"skip_duplicates"`
	RunTimeoutS    int  `yaml:"run_timeout_s"`
}

type ExtractConfig struct {
	IncludeDetails  bool `yaml:"include_details"`
	MaxDetailsChars int  `yaml:"max_details_chars"`
}

type NormalizeConfig struct {
	TrimNBSP       bool `yaml:"trim_nbsp"`
	CollapseSpaces bool `yaml:"collapse_spaces"`
}

type ExportConfig struct {
	OutputDir    string `yaml:"output_dir"`
	BaseFileName string `yaml:"base_file_name"`
	SheetName    string `yaml:"sheet_name"`
	LinkLabel    string `yaml:"link_label"`
	FontName     string `yaml:"font_name"`
}

type ObservabilityConfig struct {
	LogPath       string `yaml:"log_path"`
	LogLevel      string `yaml:"log_level"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAgeDays int    `yaml:"log_max_age_days"`
	Console       bool   `yaml:"console"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			BaseURL:  "https://www.linkedin.com/jobs/search/",
			PageSize: 25,
			MaxPages: 10,
		},
		HTTP: HttpConfig{
			UserAgent:                 "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			RequestTimeoutMS:          30000,
			MaxRetries:                6,
			RetryDelayMS:              6000,
			FollowRedirects:           true,
			MaxIdleConnections:        100,
			MaxIdleConnectionsPerHost: 10,
			IdleConnectionTimeoutS:    90,
			AcceptLanguage:            "en-US,en;q=0.9",
		},
		RobotsCacheTTLHours: 12,
		RateLimit: RateLimitConfig{
			MaxConcurrentPerHost: 2,
			RequestsPerSecond:    1,
			Burst:                1,
		},
		Pipeline: PipelineConfig{
			DetailWorkers: 1,
		},
		Extract: ExtractConfig{
			MaxDetailsChars: 32000,
		},
		Normalize: NormalizeConfig{
			TrimNBSP:       true,
			CollapseSpaces: true,
		},
		Export: ExportConfig{
			BaseFileName: "job_list_",
			SheetName:    "LINKEDIN_JOBS",
			LinkLabel:    "Job_Post_URL",
			FontName:     "Cambria",
		},
		Observability: ObservabilityConfig{
			LogPath:       "logs/linkedin-jobs.log",
			LogLevel:      "info",
			LogMaxSizeMB:  10,
			LogMaxBackups: 3,
			LogMaxAgeDays: 14,
		},
	}
}

// Validation
func (c *Config) Validate() error {
	if c.Search.BaseURL == "" {
		return fmt.Errorf("search.base_url is required")
	}
	if c.Search.PageSize <= 0 {
		return fmt.Errorf("search.page_size must be > 0")
	}
	if c.Search.MaxPages <= 0 {
		return fmt.Errorf("search.max_pages must be > 0")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent is required")
	}
	if c.HTTP.RequestTimeoutMS <= 0 {
		return fmt.Errorf("http.request_timeout_ms must be > 0")
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must be >= 0")
	}
	if c.HTTP.RetryDelayMS < 0 {
		return fmt.Errorf("http.retry_delay_ms must be >= 0")
	}
	if c.RobotsCacheTTLHours <= 0 {
		return fmt.Errorf("robots_cache_ttl_hours must be > 0")
	}
	if c.RateLimit.MaxConcurrentPerHost <= 0 {
		return fmt.Errorf("rate_limit.max_concurrent_per_host must be > 0")
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate_limit.requests_per_second must be > 0")
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.burst must be > 0")
	}
	if c.Pipeline.DetailWorkers <= 0 {
		return fmt.Errorf("pipeline.detail_workers must be > 0")
	}
	if c.Pipeline.RunTimeoutS < 0 {
		return fmt.Errorf("pipeline.run_timeout_s must be >= 0")
	}
	if c.Extract.MaxDetailsChars < 0 {
		return fmt.Errorf("extract.max_details_chars must be >= 0")
	}
	if c.Export.SheetName == "" || len(c.Export.SheetName) > 31 {
		return fmt.Errorf("export.sheet_name must be 1..31 characters")
	}
	if c.Export.LinkLabel == "" {
		return fmt.Errorf("export.link_label is required")
	}
	switch c.Observability.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("observability.log_level must be one of debug, info, warn, error")
	}
	return nil
}

// Getters
func (c *Config) GetRequestTimeout() time.Duration {
	return time.Duration(c.HTTP.RequestTimeoutMS) * time.Millisecond
}

func (c *Config) GetRetryDelay() time.Duration {
	return time.Duration(c.HTTP.RetryDelayMS) * time.Millisecond
}

func (c *Config) GetIdleConnectionTimeout() time.Duration {
	return time.Duration(c.HTTP.IdleConnectionTimeoutS) * time.Second
}

func (c *Config) GetRobotsCacheTTL() time.Duration {
	return time.Duration(c.RobotsCacheTTLHours) * time.Hour
}

func (c *Config) GetRunTimeout() time.Duration {
	return time.Duration(c.Pipeline.RunTimeoutS) * time.Second
}

// GetOutputDir returns export.output_dir, or the current working directory
// when it is unset.
func (c *Config) GetOutputDir() string {
	if c.Export.OutputDir != "" {
		return c.Export.OutputDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
