package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults point at the webvpn deployment this probe was written against;
// every one of them can be overridden from the config file.
const (
	defaultLoginURL   = "https://webvpn.tsinghua.edu.cn/login?oauth_login=true"
	defaultBaseURL    = "https://webvpn.tsinghua.edu.cn/https/77726476706e69737468656265737421e3f24088693c6152301c9aa596522b204c02212b859d0a19/api.php"
	defaultAuthDomain = "webvpn.tsinghua.edu.cn"
)

// Config represents the overall application configuration.
type Config struct {
	Portal      PortalConfig      `yaml:"portal"`
	Browser     BrowserConfig     `yaml:"browser"`
	Client      ClientConfig      `yaml:"client"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Query       QueryConfig       `yaml:"query"`
}

// PortalConfig describes the SSO tunnel: where to log in, where the API
// lives behind it, and how to drive the login form.
type PortalConfig struct {
	LoginURL            string        `yaml:"login_url"`
	BaseURL             string        `yaml:"base_url"`
	AuthDomain          string        `yaml:"auth_domain"`
	UsernameField       string        `yaml:"username_field"`
	PasswordField       string        `yaml:"password_field"`
	LoginScript         string        `yaml:"login_script"`
	PollIntervalSeconds int           `yaml:"poll_interval_seconds"`
	PollInterval        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// BrowserConfig holds browser launch options.
type BrowserConfig struct {
	Headless bool `yaml:"headless"`
}

// ClientConfig paces outgoing API requests.
type ClientConfig struct {
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	Burst           int     `yaml:"burst"`
}

// CredentialsConfig carries the SSO account. The SEATPROBE_USERNAME and
// SEATPROBE_PASSWORD environment variables take precedence, so the file
// never has to contain secrets.
type CredentialsConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// QueryConfig selects which logical day the traversal asks for.
type QueryConfig struct {
	Day string `yaml:"day"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Portal.LoginURL == "" {
		cfg.Portal.LoginURL = defaultLoginURL
	}
	if cfg.Portal.BaseURL == "" {
		cfg.Portal.BaseURL = defaultBaseURL
	}
	if cfg.Portal.AuthDomain == "" {
		cfg.Portal.AuthDomain = defaultAuthDomain
	}
	if cfg.Portal.UsernameField == "" {
		cfg.Portal.UsernameField = "#i_user"
	}
	if cfg.Portal.PasswordField == "" {
		cfg.Portal.PasswordField = "#i_pass"
	}
	if cfg.Portal.LoginScript == "" {
		cfg.Portal.LoginScript = "doLogin()"
	}
	if cfg.Portal.PollIntervalSeconds <= 0 {
		cfg.Portal.PollIntervalSeconds = 1
	}
	cfg.Portal.PollInterval = time.Duration(cfg.Portal.PollIntervalSeconds) * time.Second

	if cfg.Client.RateLimitPerSec <= 0 {
		cfg.Client.RateLimitPerSec = 2
	}
	if cfg.Client.Burst <= 0 {
		cfg.Client.Burst = 1
	}

	if cfg.Query.Day == "" {
		cfg.Query.Day = "today"
	}

	if u := os.Getenv("SEATPROBE_USERNAME"); u != "" {
		cfg.Credentials.Username = u
	}
	if p := os.Getenv("SEATPROBE_PASSWORD"); p != "" {
		cfg.Credentials.Password = p
	}

	return &cfg, nil
}
