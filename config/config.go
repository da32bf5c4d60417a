package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"parley/logger"

	"github.com/spf13/viper"
)

type DefaultPaths struct {
	ConfigDir     string
	LogPathApp    string
	LogPathAccess string
	DBPath        string
	LogLevel      string
}

type GitHubAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

type AppleAuthConfig struct {
	ClientID    string `mapstructure:"client_id"`
	RedirectURL string `mapstructure:"redirect_url"`
	JWKSURL     string `mapstructure:"jwks_url"` // Apple's published signing keys.
}

type Configuration struct {
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Server struct {
		Port          string `mapstructure:"port"`
		BaseURL       string `mapstructure:"base_url"`
		LogPath       string `mapstructure:"log_path"`
		AccessLogPath string `mapstructure:"access_log_path"`
	} `mapstructure:"server"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
	Auth struct {
		GitHub          GitHubAuthConfig `mapstructure:"github"`
		Apple           AppleAuthConfig  `mapstructure:"apple"`
		SessionTTLHours int              `mapstructure:"session_ttl_hours"`
		CookieSecure    bool             `mapstructure:"cookie_secure"`
	} `mapstructure:"auth"`
	Copilot struct {
		BaseURL            string `mapstructure:"base_url"`
		APIKey             string `mapstructure:"api_key"`
		Model              string `mapstructure:"model"`
		SystemPrompt       string `mapstructure:"system_prompt"`
		RequestTimeoutSecs int    `mapstructure:"request_timeout_secs"`
		MaxContextMessages int    `mapstructure:"max_context_messages"`
		MaxRetries         int    `mapstructure:"max_retries"`
	} `mapstructure:"copilot"`
	RateLimit struct {
		RequestsPerSecond float64 `mapstructure:"requests_per_second"`
		Burst             int     `mapstructure:"burst"`
	} `mapstructure:"ratelimit"`
}

var AppConfig Configuration

func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func GetDefaultConfigPaths() DefaultPaths {
	var paths DefaultPaths
	userConfigDirBase, err := os.UserConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not get user config dir: %v. Using current directory.\n", err)
		userConfigDirBase = "."
	}

	userConfigDir, err := expandTilde(userConfigDirBase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in user config dir '%s': %v. Using potentially literal path.\n", userConfigDirBase, err)
		userConfigDir = userConfigDirBase
	}

	paths.ConfigDir = filepath.Join(userConfigDir, "parley")
	logDir := filepath.Join(paths.ConfigDir, "logs")

	paths.LogPathApp = filepath.Join(logDir, "app.log")
	paths.LogPathAccess = filepath.Join(logDir, "access.log")
	paths.DBPath = filepath.Join(paths.ConfigDir, "parley.db")
	paths.LogLevel = "INFO"
	return paths
}

func Init(cfgFile string, flagAppLogPath, flagLogLevel string) error {
	v := viper.New()

	defaults := GetDefaultConfigPaths()
	v.SetDefault("database.path", defaults.DBPath)
	v.SetDefault("server.port", "8690")
	v.SetDefault("server.base_url", "http://localhost:8690")
	v.SetDefault("server.log_path", defaults.LogPathApp)
	v.SetDefault("server.access_log_path", defaults.LogPathAccess)
	v.SetDefault("logging.level", defaults.LogLevel)
	v.SetDefault("auth.session_ttl_hours", 24*14)
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("auth.github.redirect_url", "http://localhost:8690/api/auth/github/callback")
	v.SetDefault("auth.apple.redirect_url", "http://localhost:8690/api/auth/apple/callback")
	v.SetDefault("auth.apple.jwks_url", "https://appleid.apple.com/auth/keys")
	v.SetDefault("copilot.base_url", "https://api.openai.com/v1")
	v.SetDefault("copilot.model", "gpt-4o-mini")
	v.SetDefault("copilot.request_timeout_secs", 120)
	v.SetDefault("copilot.max_context_messages", 40)
	v.SetDefault("copilot.max_retries", 2)
	v.SetDefault("ratelimit.requests_per_second", 10.0)
	v.SetDefault("ratelimit.burst", 30)

	if cfgFile != "" {
		expandedCfgFile, err := expandTilde(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in config file path '%s': %v. Trying original path.\n", cfgFile, err)
			expandedCfgFile = cfgFile
		}
		v.SetConfigFile(expandedCfgFile)
		v.SetConfigType("yaml")
	} else {
		v.AddConfigPath(defaults.ConfigDir)
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("PARLEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	configUsedMsg := "Using default/environment configuration."
	readErr := v.ReadInConfig()
	if readErr == nil {
		configUsedMsg = fmt.Sprintf("Using config file: %s", v.ConfigFileUsed())
	} else {
		if _, ok := readErr.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				fmt.Fprintf(os.Stderr, "Warning: Config file specified by flag (%s) not found: %v\n", cfgFile, readErr)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", v.ConfigFileUsed(), readErr)
		}
	}

	if err := v.Unmarshal(&AppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Error unmarshalling configuration: %v\n", err)
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Apply flag overrides
	if flagAppLogPath != "" {
		expandedPath, err := expandTilde(flagAppLogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in --app-log path '%s': %v. Using original path.\n", flagAppLogPath, err)
			AppConfig.Server.LogPath = flagAppLogPath
		} else {
			AppConfig.Server.LogPath = expandedPath
		}
	}
	if flagLogLevel != "" {
		AppConfig.Logging.Level = strings.ToUpper(flagLogLevel)
	}

	// Expand tilde for paths read from config that might contain it
	var err error
	AppConfig.Database.Path, err = expandTilde(AppConfig.Database.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in database.path '%s': %v.\n", AppConfig.Database.Path, err)
	}

	// Ensure directories exist
	if err := os.MkdirAll(filepath.Dir(AppConfig.Server.LogPath), 0750); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create app log directory %s: %v\n", filepath.Dir(AppConfig.Server.LogPath), err)
	}
	if err := os.MkdirAll(filepath.Dir(AppConfig.Server.AccessLogPath), 0750); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create access log directory %s: %v\n", filepath.Dir(AppConfig.Server.AccessLogPath), err)
	}
	if err := os.MkdirAll(defaults.ConfigDir, 0750); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create main config directory %s: %v\n", defaults.ConfigDir, err)
	}

	// Initialize/Re-initialize loggers
	if err := logger.InitGlobalLoggers(AppConfig.Server.LogPath, AppConfig.Server.AccessLogPath, AppConfig.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to initialize global loggers with final config: %v\n", err)
		return fmt.Errorf("failed to initialize global loggers with final config: %w", err)
	}

	logger.Info("%s", configUsedMsg)
	if readErr != nil && cfgFile != "" {
		logger.Error("Error occurred reading specified config file '%s': %v", cfgFile, readErr)
	}

	if AppConfig.Auth.GitHub.ClientID == "" {
		logger.Warn("GitHub OAuth client_id is not configured. GitHub login will be disabled.")
	}
	if AppConfig.Auth.Apple.ClientID == "" {
		logger.Warn("Apple Sign In client_id is not configured. Apple login will be disabled.")
	}
	if AppConfig.Copilot.APIKey == "" {
		logger.Warn("Copilot api_key is not configured. Assistant completions will fail upstream auth.")
	}

	logger.Debug("Final AppConfig Initialized: %+v", AppConfig)
	return nil
}
