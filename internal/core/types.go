package core

// Config represents the complete botpoll configuration structure
type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Commands CommandsConfig `yaml:"commands"`
	Security SecurityConfig `yaml:"security"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// BotConfig represents the Bot API session settings
type BotConfig struct {
	Token               string `yaml:"token"`
	TokenKeyringAccount string `yaml:"token_keyring_account"` // read the token from the system keychain
	Name                string `yaml:"name"`                  // skips getMe when set
	APIURL              string `yaml:"api_url"`
	UpdateInterval      string `yaml:"update_interval"` // e.g. "1s"
	Timeout             string `yaml:"timeout"`         // long-poll timeout, e.g. "30s"
	InitialOffset       uint64 `yaml:"initial_offset"`
}

// CommandsConfig selects the stock handlers
type CommandsConfig struct {
	Enabled      []string `yaml:"enabled"`       // empty enables all
	SendSelfFile string   `yaml:"send_self_file"` // file sent by /send_self
	ReplyUnknown bool     `yaml:"reply_unknown"`
	AnswerInline bool     `yaml:"answer_inline"`
}

// SecurityConfig represents access control configuration
type SecurityConfig struct {
	WhitelistEnabled bool    `yaml:"whitelist_enabled"`
	AllowedUsers     []int64 `yaml:"allowed_users"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	File         string `yaml:"file"`          // Log file path
	MaxSize      int    `yaml:"max_size"`      // Single file max size in MB (default: 100)
	MaxBackups   int    `yaml:"max_backups"`   // Number of backups to keep (default: 5)
	MaxAge       int    `yaml:"max_age"`       // Maximum days to retain (default: 30)
	Compress     bool   `yaml:"compress"`      // Whether to compress old logs
	EnableStdout *bool  `yaml:"enable_stdout"` // Also output to stdout (default: true)
}
