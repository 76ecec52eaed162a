// Package core provides configuration management and assembly for botpoll.
//
// The core package turns a YAML file into a running dispatcher. It handles:
//
//   - Configuration loading and validation (from YAML files)
//   - API key resolution, from the file or the system keychain
//   - Assembling the transport, client, command table and dispatcher
//
// # Configuration
//
// Configuration is loaded from a YAML file with the following main sections:
//
//   - bot: API key, name override, polling cadence and offset
//   - commands: which stock handlers to register
//   - security: Access control and whitelisting
//   - logging: Log configuration
//
// # Example Configuration
//
//	bot:
//	  token: "${TELEGRAM_BOT_KEY}"
//	  update_interval: "200ms"
//	  timeout: "30s"
//	commands:
//	  enabled: ["/reply", "/location"]
//	  reply_unknown: true
//	logging:
//	  level: "info"
package core

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/keepmind9/botpoll/internal/bot"
	"github.com/keepmind9/botpoll/internal/handlers"
	"github.com/keepmind9/botpoll/internal/logger"
	"github.com/keepmind9/botpoll/pkg/constants"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel        = "info"
	DefaultLogEnableStdout = true

	// Default polling values
	DefaultUpdateInterval = "1s"
	DefaultTimeout        = "30s"
)

// LoadConfig loads configuration from file and expands environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Read configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables
	expandedData, err := expandEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	// Parse YAML
	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// expandEnv replaces ${VAR_NAME} patterns with environment variable values
func expandEnv(input string) (string, error) {
	var missingVars []string

	result := os.Expand(input, func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		missingVars = append(missingVars, key)
		return ""
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s",
			strings.Join(missingVars, ", "))
	}

	return result, nil
}

// validateConfig fills in defaults and checks the configuration
func validateConfig(config *Config) error {
	// Set default logging configuration
	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = constants.DefaultLogMaxSize
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = constants.DefaultLogMaxBackups
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = constants.DefaultLogMaxAge
	}
	if config.Logging.EnableStdout == nil {
		enable := DefaultLogEnableStdout
		config.Logging.EnableStdout = &enable
	}

	// Validate bot credentials
	config.Bot.Token = strings.TrimSpace(config.Bot.Token)
	if config.Bot.Token == "" && config.Bot.TokenKeyringAccount == "" {
		return fmt.Errorf("bot.token or bot.token_keyring_account must be set")
	}
	config.Bot.Name = strings.TrimPrefix(strings.TrimSpace(config.Bot.Name), constants.MentionSeparator)

	// Validate polling configuration
	if config.Bot.UpdateInterval == "" {
		config.Bot.UpdateInterval = DefaultUpdateInterval
	}
	if config.Bot.Timeout == "" {
		config.Bot.Timeout = DefaultTimeout
	}

	interval, err := time.ParseDuration(config.Bot.UpdateInterval)
	if err != nil {
		return fmt.Errorf("invalid bot.update_interval: %w", err)
	}
	if interval < constants.MinUpdateInterval {
		return fmt.Errorf("bot.update_interval must be at least %v (got %v)", constants.MinUpdateInterval, interval)
	}

	timeout, err := time.ParseDuration(config.Bot.Timeout)
	if err != nil {
		return fmt.Errorf("invalid bot.timeout: %w", err)
	}
	// 0 selects short polling
	if timeout < 0 {
		return fmt.Errorf("bot.timeout cannot be negative (got %v)", timeout)
	}
	if timeout%time.Second != 0 {
		return fmt.Errorf("bot.timeout must be a whole number of seconds (got %v)", timeout)
	}
	if timeout > constants.MaxCallTimeout {
		return fmt.Errorf("bot.timeout is too large (max %v, got %v)", constants.MaxCallTimeout, timeout)
	}

	// Validate commands
	for i, name := range config.Commands.Enabled {
		if strings.TrimSpace(strings.TrimPrefix(name, constants.CommandMarker)) == "" {
			return fmt.Errorf("commands.enabled[%d] is empty", i)
		}
		config.Commands.Enabled[i] = bot.NormalizeCommand(name)
	}

	// Validate security settings
	if config.Security.WhitelistEnabled {
		if len(config.Security.AllowedUsers) == 0 {
			return fmt.Errorf("security.allowed_users cannot be empty when whitelist is enabled")
		}
	}

	return nil
}

// UpdateInterval returns the parsed bot.update_interval
func (c *Config) UpdateInterval() time.Duration {
	d, err := time.ParseDuration(c.Bot.UpdateInterval)
	if err != nil {
		return constants.DefaultUpdateInterval
	}
	return d
}

// Timeout returns the parsed bot.timeout
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.Bot.Timeout)
	if err != nil {
		return constants.DefaultCallTimeout
	}
	return d
}

// DispatcherConfig returns the session settings for a dispatcher using token
func (c *Config) DispatcherConfig(token string) bot.Config {
	return bot.Config{
		Token:          token,
		Name:           c.Bot.Name,
		UpdateInterval: c.UpdateInterval(),
		Timeout:        c.Timeout(),
		InitialOffset:  c.Bot.InitialOffset,
	}
}

// HandlerOptions returns the stock handler selection
func (c *Config) HandlerOptions() handlers.Options {
	opts := handlers.Options{
		Enabled:      c.Commands.Enabled,
		SelfFile:     c.Commands.SendSelfFile,
		ReplyUnknown: c.Commands.ReplyUnknown,
		AnswerInline: c.Commands.AnswerInline,
	}
	if c.Security.WhitelistEnabled {
		opts.AllowedUsers = c.Security.AllowedUsers
	}
	return opts
}

// LoggerConfig returns the logger settings
func (c *Config) LoggerConfig() logger.Config {
	enableStdout := DefaultLogEnableStdout
	if c.Logging.EnableStdout != nil {
		enableStdout = *c.Logging.EnableStdout
	}
	return logger.Config{
		Level:        c.Logging.Level,
		File:         c.Logging.File,
		MaxSize:      c.Logging.MaxSize,
		MaxBackups:   c.Logging.MaxBackups,
		MaxAge:       c.Logging.MaxAge,
		Compress:     c.Logging.Compress,
		EnableStdout: enableStdout,
	}
}
